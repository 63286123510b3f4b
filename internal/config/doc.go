// Package config manages the haxomatic user configuration file.
//
// The file lives at $XDG_CONFIG_HOME/haxomatic/config.yaml (resolved with
// github.com/adrg/xdg, so the platform default is used when the variable is
// unset). A missing file is not an error; defaults are used instead.
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	cfg = cfg.Merge(flagOutputDir, flagLogLevel)
//
// Command-line flags take precedence over the file.
package config
