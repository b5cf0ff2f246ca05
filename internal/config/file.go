package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is prepended to upper-cased keys for environment overrides,
// e.g. SPRINT_STATS_PASSWORD.
const EnvPrefix = "SPRINT_STATS"

// Config defines the structure of the sprint stats configuration file.
type Config struct {
	Server      string   `mapstructure:"server" yaml:"server"`
	User        string   `mapstructure:"user" yaml:"user"`
	Password    string   `mapstructure:"password" yaml:"password"`
	Sprints     []string `mapstructure:"sprints" yaml:"sprints"`
	Users       []string `mapstructure:"users" yaml:"users"`
	PointsField string   `mapstructure:"points_field" yaml:"points_field"`
}

var keys = []string{"server", "user", "password", "sprints", "users", "points_field"}

// newViper binds environment overrides only when withEnv is set; a viper
// that writes the file back must not see them.
func newViper(path string, withEnv bool) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("json")
	}
	if !withEnv {
		return v
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	return v
}

// Load reads the configuration file at path. Values from the environment
// take precedence over the file.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("config file path is empty")
	}

	v := newViper(path, true)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file not found at %s", path)
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		trimSliceHook,
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// trimSliceHook strips whitespace around list entries that came from a
// comma-separated string, so "alice, bob" yields ["alice" "bob"].
func trimSliceHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	in, ok := data.([]string)
	if !ok {
		return data, nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// SetValue updates a single key in the configuration file at path and
// writes it back in the file's own format. List keys take a
// comma-separated value. Environment overrides are ignored so they never
// end up in the file.
func SetValue(path, key, value string) error {
	v := newViper(path, false)
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	switch key {
	case "server", "user", "password", "points_field":
		v.Set(key, value)
	case "sprints", "users":
		var list []string
		for _, s := range strings.Split(value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		v.Set(key, list)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file to %s: %w", path, err)
	}
	return os.Chmod(path, 0600)
}

// PrintRaw prints the configuration as YAML (for view command).
func PrintRaw(cfg Config) {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		fmt.Printf("Error formatting config: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// PrintMasked prints the configuration with the password masked (for show command).
func PrintMasked(cfg Config) {
	fmt.Printf("Server: %s\n", cfg.Server)
	fmt.Printf("User: %s\n", cfg.User)
	fmt.Printf("Password: %s\n", Mask(cfg.Password))
	fmt.Printf("Points Field: %s\n", cfg.PointsField)
	fmt.Printf("Sprints: %s\n", strings.Join(cfg.Sprints, ", "))
	fmt.Printf("Users: %s\n", strings.Join(cfg.Users, ", "))
}

// Mask hides all but the ends of a secret.
func Mask(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) > 8:
		return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
	default:
		return strings.Repeat("*", len(secret))
	}
}
