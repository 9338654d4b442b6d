// Package config layers wxcli settings from defaults, an optional config
// file, environment variables and command-line flags.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

var K = koanf.New(".")

// HTTPSettings holds the fixed configuration of the shared HTTP client.
// Timeouts are expressed in seconds.
type HTTPSettings struct {
	ConnectTimeoutSecs float64 `koanf:"connect_timeout"`
	ReadTimeoutSecs    float64 `koanf:"read_timeout"`
	MaxRetries         int     `koanf:"max_retries"`
	BackoffFactor      float64 `koanf:"backoff_factor"`
	MaxConns           int     `koanf:"max_conns"`
}

// ConnectTimeout returns the connect timeout as a duration.
func (h HTTPSettings) ConnectTimeout() time.Duration {
	return time.Duration(h.ConnectTimeoutSecs * float64(time.Second))
}

// ReadTimeout returns the read timeout as a duration.
func (h HTTPSettings) ReadTimeout() time.Duration {
	return time.Duration(h.ReadTimeoutSecs * float64(time.Second))
}

// Settings is the resolved wxcli configuration.
type Settings struct {
	GeocodeBaseURL string       `koanf:"geocode_base_url"`
	WeatherBaseURL string       `koanf:"weather_base_url"`
	LogFile        string       `koanf:"log_file"`
	HTTP           HTTPSettings `koanf:"http"`
}

// Defaults returns the built-in configuration values.
func Defaults() Settings {
	return Settings{
		GeocodeBaseURL: "https://geocode.maps.co/search",
		WeatherBaseURL: "https://api.open-meteo.com/v1/forecast",
		LogFile:        "wxcli.log",
		HTTP: HTTPSettings{
			ConnectTimeoutSecs: 2.0,
			ReadTimeoutSecs:    5.0,
			MaxRetries:         3,
			BackoffFactor:      0.3,
			MaxConns:           10,
		},
	}
}

// LoadConfig resolves Settings. Precedence, lowest to highest: built-in
// defaults, config file (format by extension), environment variables
// prefixed WXCLI_, then command-line flags. A local .env file is loaded
// into the environment first, when present.
func LoadConfig(flagSet *pflag.FlagSet, configFile string) (Settings, error) {
	// Missing .env is fine; it only exists to hold MAPS_API_KEY locally.
	_ = godotenv.Load()

	settings := Defaults()

	if configFile != "" {
		parser, err := parserForFile(configFile)
		if err != nil {
			return settings, fmt.Errorf("unsupported config file format: %w", err)
		}
		if err := K.Load(file.Provider(configFile), parser); err != nil {
			return settings, fmt.Errorf("load config file: %w", err)
		}
	}

	// WXCLI_HTTP__MAX_RETRIES becomes http.max_retries. The double
	// underscore is the level separator so keys like geocode_base_url
	// survive the mapping.
	K.Load(env.Provider("WXCLI_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "WXCLI_")), "__", ".", -1)
	}), nil)

	if flagSet != nil {
		K.Load(posflag.Provider(flagSet, ".", K), nil)
	}

	if err := K.Unmarshal("", &settings); err != nil {
		return settings, fmt.Errorf("unmarshal config: %w", err)
	}

	return settings, nil
}

func parserForFile(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".env":
		return dotenv.Parser(), nil
	default:
		return nil, fmt.Errorf("unknown file extension: %s", ext)
	}
}
