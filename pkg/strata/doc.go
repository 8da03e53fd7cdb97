// Package strata provides layered application configuration.
//
// A configuration has three layers, merged in priority order into one
// effective configuration:
//
//	default   set in code by the application author
//	system    /etc/<name>/config
//	user      ~/.config/<name>/config
//
// The user layer overrides the system layer, which overrides the defaults.
// Nested mappings are merged key by key; any other value (string, number,
// sequence) is replaced wholesale by the higher-priority layer.
//
// # Basic Usage
//
//	cfgs, err := strata.New("my_sweet_program",
//		strata.WithAutoLoad(false),
//		strata.WithDefaults(map[string]any{
//			"ssh":  map[string]any{"port": 22, "hosts": []any{"host1.example.com"}},
//			"auth": map[string]any{"user": "lana"},
//		}),
//	)
//	if err != nil {
//		return err
//	}
//	if err := cfgs.Load(strata.LevelAll); err != nil {
//		return err
//	}
//	created, err := cfgs.Create(strata.CreateOptions{})
//	if err != nil {
//		return err
//	}
//	if created {
//		return fmt.Errorf("edit %s", cfgs.Path(strata.LevelUser))
//	}
//
//	cfg := cfgs.Cfg()
//	port, _ := cfg.Lookup("ssh.port")
//
// # Formats
//
// Layer files are YAML by default. WithAdapter("json") or WithAdapter("toml")
// selects another registered adapter; see package adapter. The file name does
// not change with the format.
//
// # Missing and Malformed Files
//
// A missing layer file is an empty layer. A file the adapter cannot parse is
// reported as a *SerializationError and nothing is loaded.
//
// # Writes
//
// Save and Create replace layer files atomically through a temporary file in
// the same directory. Concurrent writers in different processes are not
// coordinated; the last rename wins.
package strata
