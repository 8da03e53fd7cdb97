// Package config resolves where strata keeps its layer files.
//
// Every configuration has a name, and the name picks two directories:
//
//	/etc/<name>/config              system layer
//	~/.config/<name>/config         user layer
//
// The user directory honours XDG_CONFIG_HOME when it is set to an absolute
// path. The file name is always "config", whatever the format; the format only
// changes what is inside the file.
//
// If the home directory cannot be determined a warning is logged and the user
// directory becomes relative to the current directory, so a missing $HOME does
// not stop the program from starting.
package config
