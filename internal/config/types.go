// SPDX-License-Identifier: MPL-2.0

package config

// DefaultLaunchURI starts Factorio through Steam.
const DefaultLaunchURI = "steam://rungameid/427520"

type (
	// Config holds the application configuration.
	Config struct {
		Factorio FactorioConfig `json:"factorio" mapstructure:"factorio"`
		Build    BuildConfig    `json:"build" mapstructure:"build"`
		New      NewConfig      `json:"new" mapstructure:"new"`
		UI       UIConfig       `json:"ui" mapstructure:"ui"`
	}

	// FactorioConfig locates the game.
	FactorioConfig struct {
		// ModsDir overrides the platform mods directory when non-empty.
		ModsDir string       `json:"mods_dir" mapstructure:"mods_dir"`
		Launch  LaunchConfig `json:"launch" mapstructure:"launch"`
	}

	// LaunchConfig selects how `facmod run` starts the game. Command wins
	// over URI when both are set.
	LaunchConfig struct {
		URI     string `json:"uri" mapstructure:"uri"`
		Command string `json:"command" mapstructure:"command"`
	}

	// BuildConfig tunes packaging.
	BuildConfig struct {
		// Lock serialises concurrent builds of the same artifact.
		Lock bool `json:"lock" mapstructure:"lock"`
		// Reproducible stamps every entry with a fixed modification time.
		Reproducible bool `json:"reproducible" mapstructure:"reproducible"`
	}

	// NewConfig provides defaults for `facmod new`.
	NewConfig struct {
		Author  string `json:"author" mapstructure:"author"`
		GitInit bool   `json:"git_init" mapstructure:"git_init"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		Verbose     bool `json:"verbose" mapstructure:"verbose"`
		Interactive bool `json:"interactive" mapstructure:"interactive"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Factorio: FactorioConfig{
			Launch: LaunchConfig{URI: DefaultLaunchURI},
		},
		Build: BuildConfig{Lock: true},
		New:   NewConfig{GitInit: true},
	}
}
