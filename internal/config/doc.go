// Package config loads and saves the shoplist YAML configuration.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/shoplist/config.yaml or $HOME/.config/shoplist/config.yaml
//   - macOS: $HOME/.config/shoplist/config.yaml
//   - Windows: %LOCALAPPDATA%\shoplist\config.yaml
//
// A missing file is not an error: Load returns the defaults. Keys absent
// from the file keep their default values.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Apply(config.Overrides{BaseURL: "http://pantry.local:8080"})
//
//	// Write the effective configuration atomically
//	if err := cfg.Save(""); err != nil {
//	    log.Fatal(err)
//	}
package config
