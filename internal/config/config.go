package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/switchyard/internal/adapters/file"
	"github.com/aretw0/switchyard/internal/runtime"
	"github.com/aretw0/switchyard/pkg/adapters/process"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the optional project configuration file, looked up in the
// project directory.
const FileName = "switchyard"

// EnvPrefix prefixes environment overrides, e.g. SWITCHYARD_INJECTION_MODE.
const EnvPrefix = "SWITCHYARD"

// EnvConfig points at an explicit configuration file.
const EnvConfig = "SWITCHYARD_CONFIG"

// Config holds application configuration.
type Config struct {
	Session    SessionConfig           `mapstructure:"session"`
	Escalation EscalationConfig        `mapstructure:"escalation"`
	Injection  process.InjectionConfig `mapstructure:"injection"`
	UI         UIConfig                `mapstructure:"ui"`
	Metrics    MetricsConfig           `mapstructure:"metrics"`
}

// SessionConfig locates the session record.
type SessionConfig struct {
	// Dir holds one record per tree, named after the tree file.
	Dir string `mapstructure:"dir"`
	// File overrides Dir with an explicit record path.
	File string `mapstructure:"file"`
}

// EscalationConfig configures the dry-run gate.
type EscalationConfig struct {
	Flag        string `mapstructure:"flag"`
	Passcode    string `mapstructure:"passcode"`
	Environment string `mapstructure:"environment"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ClearScreen bool `mapstructure:"clear_screen"`
	Banner      bool `mapstructure:"banner"`
	Plain       bool `mapstructure:"plain"`
}

// MetricsConfig enables the textfile export.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// FlagBindings maps configuration keys to the cobra flags that override them.
var FlagBindings = map[string]string{
	"session.file":  "session",
	"ui.plain":      "plain",
	"metrics.file":  "metrics-file",
	"injection.env": "env",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("session.dir", file.DefaultDir)
	v.SetDefault("session.file", "")
	v.SetDefault("escalation.flag", domain.DefaultBroadcastFlag)
	v.SetDefault("escalation.passcode", runtime.DefaultPasscode)
	v.SetDefault("escalation.environment", "")
	v.SetDefault("injection.mode", string(process.ModeNone))
	v.SetDefault("injection.env", "")
	v.SetDefault("injection.path", "")
	v.SetDefault("injection.prefix", []string{})
	v.SetDefault("injection.shell", process.DefaultInnerShell)
	v.SetDefault("ui.clear_screen", false)
	v.SetDefault("ui.banner", true)
	v.SetDefault("ui.plain", false)
	v.SetDefault("metrics.file", "")
}

// Load reads configuration from defaults, an optional switchyard.{yaml,json,toml}
// in dir, SWITCHYARD_* environment variables and, last, any flags changed on
// the command line.
func Load(dir string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgPath := os.Getenv(EnvConfig); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
		v.SetConfigName(FileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// A relative session dir is anchored to the project, not the cwd.
	if c.Session.Dir != "" && !filepath.IsAbs(c.Session.Dir) && dir != "" {
		c.Session.Dir = filepath.Join(dir, c.Session.Dir)
	}
	return c, nil
}

// SessionFile returns where the record for treeName lives.
func (c Config) SessionFile(treeName string) string {
	if c.Session.File != "" {
		return c.Session.File
	}
	return filepath.Join(c.Session.Dir, treeName+".json")
}

// TargetEnvironment names the broadcast target shown in the confirmation.
// It falls back to the injection environment, as that is where secrets come from.
func (c Config) TargetEnvironment() string {
	if c.Escalation.Environment != "" {
		return c.Escalation.Environment
	}
	return c.Injection.Env
}
