package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// FileDefaults mirrors the optional TOML defaults file. Values apply only
// where the corresponding flag was not set explicitly, so flags and env
// vars always win.
type FileDefaults struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	MaxSteps int    `toml:"max_steps"`
	StartURL string `toml:"start_url"`
}

// LoadDefaults reads and parses a TOML defaults file
func LoadDefaults(path string) (*FileDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}
	var defaults FileDefaults
	if err := toml.Unmarshal(data, &defaults); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &defaults, nil
}

// Apply copies file values into the configs for flags the user left unset
func (d *FileDefaults) Apply(cmd *cli.Command, inf *Inference, nav *Navigator) {
	if d.Provider != "" && !cmd.IsSet("provider") {
		inf.Provider = d.Provider
	}
	if d.Model != "" && !cmd.IsSet("model") {
		inf.Model = d.Model
	}
	if d.MaxSteps > 0 && !cmd.IsSet("max-steps") {
		nav.MaxSteps = d.MaxSteps
	}
	if d.StartURL != "" && !cmd.IsSet("url") {
		nav.StartURL = d.StartURL
	}
}
