// Command `strata` inspects and edits layered configuration files.
//
// Every command works on one named configuration, whose layers live in
// /etc/<name>/config (system) and ~/.config/<name>/config (user).
//
// Usage:
//
//	strata show    --name <name> [--level all|default|system|user]
//	strata get     --name <name> <path>
//	strata set     --name <name> <path> <value> [--level user|system]
//	strata explain --name <name>
//	strata init    --name <name> [--defaults <file>] [--load]
//
// Examples:
//
//	strata show --name myapp --format json          - Print the effective config as JSON
//	strata get --name myapp ssh.port                - Print one value
//	strata set --name myapp ssh.hosts '[a, b]'      - Store a sequence in the user layer
//	strata explain --name myapp                     - Show which layer every value came from
//	strata init --name myapp --defaults app.yaml    - Write first-run user config
//
// Values given to `set` are parsed as YAML scalars, so 22 is a number, true is
// a boolean and [a, b] is a sequence.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/lc/strata/internal/buildinfo"
	"github.com/lc/strata/internal/log"
	"github.com/lc/strata/pkg/adapter"
	"github.com/lc/strata/pkg/node"
	"github.com/lc/strata/pkg/strata"
)

type flags struct {
	name      string
	format    string
	userDir   string
	systemDir string
	file      string
	defaults  string
	opts      []string
	verbose   bool
}

func main() {
	defer log.Sync()

	var f flags
	root := &cobra.Command{
		Use:   "strata",
		Short: "Layered configuration tool",
		Long: `strata reads a named configuration from its default, system and user
layers, merges them (user over system over default) and lets you inspect
or edit the result.`,
		Version:      buildinfo.String(),
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if f.verbose {
				log.SetLevel(zapcore.DebugLevel)
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.name, "name", "", "configuration name (required)")
	pf.StringVar(&f.format, "format", "", "file format: "+strings.Join(adapter.Names(), ", "))
	pf.StringVar(&f.userDir, "user-dir", "", "user layer directory (default ~/.config/<name>)")
	pf.StringVar(&f.systemDir, "system-dir", "", "system layer directory (default /etc/<name>)")
	pf.StringVar(&f.file, "file", "", "layer file name (default config)")
	pf.StringVar(&f.defaults, "defaults", "", "file holding the default layer, in --format")
	pf.StringArrayVar(&f.opts, "opt", nil, "extra option as key=value (repeatable)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	// ---- version command ----
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("version: %s\n", buildinfo.Version)
			fmt.Printf("commit: %s\n", buildinfo.Commit)
		},
	}

	// ---- show command ----
	var showLevel string
	showCmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the effective configuration or one layer",
		Example: "strata show --name myapp --level user",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			level, err := strata.ParseLevel(showLevel)
			if err != nil {
				return err
			}
			c, a, err := open(f)
			if err != nil {
				return err
			}
			n := c.Cfg()
			if level != strata.LevelAll {
				n = layerOf(c, level)
			}
			out, err := a.Serialize(n.ToMapping(true))
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
	showCmd.Flags().StringVar(&showLevel, "level", "all", "layer to print: all, default, system or user")

	// ---- get command ----
	getCmd := &cobra.Command{
		Use:     "get <path>",
		Short:   "Print one value of the effective configuration",
		Example: "strata get --name myapp ssh.port",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, a, err := open(f)
			if err != nil {
				return err
			}
			v, ok := c.Cfg().Lookup(args[0])
			if !ok {
				return fmt.Errorf("%s: not set", args[0])
			}
			if n, isNode := v.(*node.Node); isNode {
				out, err := a.Serialize(n.ToMapping(true))
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(out)
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	// ---- set command ----
	var setLevel string
	setCmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Store a value in the user or system layer",
		Long: `Store a value in the user (default) or system layer and save the layer file.
The value is parsed as a YAML scalar or flow collection.`,
		Example: "strata set --name myapp ssh.port 2222",
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			level, err := strata.ParseLevel(setLevel)
			if err != nil {
				return err
			}
			if level != strata.LevelUser && level != strata.LevelSystem {
				return fmt.Errorf("--level must be user or system, got %q", setLevel)
			}
			value, err := parseValue(args[1])
			if err != nil {
				return err
			}
			c, _, err := open(f)
			if err != nil {
				return err
			}
			layerOf(c, level).SetPath(args[0], value)
			if err := saveLayer(c, level); err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ Saved ")
			color.New(color.FgHiWhite).Printf("%s", args[0])
			color.New(color.FgGreen, color.Bold).Printf(" to ")
			color.New(color.FgHiYellow).Println(c.Path(level))
			return nil
		},
	}
	setCmd.Flags().StringVar(&setLevel, "level", "user", "layer to write: user or system")

	// ---- explain command ----
	explainCmd := &cobra.Command{
		Use:     "explain",
		Short:   "Show which layer supplied each value",
		Example: "strata explain --name myapp",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, _, err := open(f)
			if err != nil {
				return err
			}
			origins := c.Origins()
			if len(origins) == 0 {
				color.Yellow("No configuration values found.")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Key", "Value", "Layer"})
			table.SetHeaderColor(
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
			)
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			table.SetColumnColor(
				tablewriter.Colors{tablewriter.FgHiWhiteColor},
				tablewriter.Colors{tablewriter.FgGreenColor},
				tablewriter.Colors{tablewriter.FgYellowColor},
			)
			for _, o := range origins {
				table.Append([]string{o.Key, fmt.Sprint(o.Value), describe(c, o.Level)})
			}

			color.New(color.Bold).Printf("EFFECTIVE CONFIGURATION: %s\n", c.Name())
			table.Render()
			return nil
		},
	}

	// ---- init command ----
	var initLoad bool
	var initDest string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a first-run config file if none exists",
		Long: `Copy the default layer (see --defaults) into the user layer file, but only
when neither a system nor a user config exists yet.`,
		Example: "strata init --name myapp --defaults defaults.yaml",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dest, err := strata.ParseLevel(initDest)
			if err != nil {
				return err
			}
			c, _, err := open(f)
			if err != nil {
				return err
			}
			created, err := c.Create(strata.CreateOptions{Destination: dest, Load: initLoad})
			if err != nil {
				log.Error("creating config failed", "name", c.Name(), "path", c.Path(dest), "error", err)
				return err
			}
			if !created {
				color.Yellow("Configuration already exists; nothing written.")
				return nil
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ Created ")
			color.New(color.FgHiYellow, color.Bold).Println(c.Path(dest))
			color.New(color.FgYellow).Println("Edit it to suit your setup.")
			return nil
		},
	}
	initCmd.Flags().BoolVar(&initLoad, "load", false, "reload all layers after writing")
	initCmd.Flags().StringVar(&initDest, "destination", "user", "layer to write: user or system")

	root.AddCommand(showCmd, getCmd, setCmd, explainCmd, initCmd, versionCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// open builds the Config described by the command-line flags. The flags and
// every --opt pair go through strata.NewFromMap, so unknown --opt keys are
// rejected the same way the library rejects them.
func open(f flags) (*strata.Config, adapter.Adapter, error) {
	opts, err := optionMap(f)
	if err != nil {
		return nil, nil, err
	}

	format, _ := opts[strata.KeyAdapter].(string)
	if format == "" {
		format = "yaml"
	}
	a, err := adapter.Lookup(format)
	if err != nil {
		return nil, nil, err
	}

	if f.defaults != "" {
		data, err := os.ReadFile(f.defaults)
		if err != nil {
			return nil, nil, fmt.Errorf("reading defaults: %w", err)
		}
		m, err := a.Deserialize(data)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing defaults %s: %w", f.defaults, err)
		}
		opts[strata.KeyDefault] = m
	}

	c, err := strata.NewFromMap(opts)
	if err != nil {
		return nil, nil, err
	}
	return c, a, nil
}

func optionMap(f flags) (map[string]any, error) {
	opts := make(map[string]any)
	for _, kv := range f.opts {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--opt %q: want key=value", kv)
		}
		opts[k] = v
	}
	set := func(key, val string) {
		if val != "" {
			opts[key] = val
		}
	}
	set(strata.KeyName, f.name)
	set(strata.KeyAdapter, f.format)
	set(strata.KeyUserDir, f.userDir)
	set(strata.KeySystemDir, f.systemDir)
	set(strata.KeyFileName, f.file)
	return opts, nil
}

func saveLayer(c *strata.Config, level strata.Level) error {
	if err := c.Save(level); err != nil {
		log.Error("saving layer failed", "level", level, "path", c.Path(level), "error", err)
		return err
	}
	return nil
}

func layerOf(c *strata.Config, level strata.Level) *node.Node {
	switch level {
	case strata.LevelDefault:
		return c.Default()
	case strata.LevelSystem:
		return c.System()
	case strata.LevelUser:
		return c.User()
	default:
		return c.Cfg()
	}
}

func describe(c *strata.Config, level strata.Level) string {
	switch level {
	case strata.LevelSystem, strata.LevelUser:
		return fmt.Sprintf("%s (%s)", level, c.Path(level))
	case "":
		return "-"
	default:
		return level.String()
	}
}

func parseValue(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("parsing value %q: %w", s, err)
	}
	return v, nil
}
