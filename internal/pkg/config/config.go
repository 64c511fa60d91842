// Package config loads process settings from flags, an optional .env file and the
// environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppConfig holds the configuration of the API server.
// Tags used:
//   - mapstructure: the environment key
//   - default: value used when the key is missing
//   - required: "true" fails Load when the value is empty
type AppConfig struct {
	Environment string `mapstructure:"APP_ENV" default:"development"`
	LogLevel    string `mapstructure:"LOG_LEVEL" default:"info"`
	HTTPPort    int    `mapstructure:"HTTP_PORT" default:"8080"`

	Database DatabaseConfig `mapstructure:",squash"`

	// RedisURL enables the status cache when set.
	RedisURL       string        `mapstructure:"REDIS_URL"`
	StatusCacheTTL time.Duration `mapstructure:"STATUS_CACHE_TTL" default:"1h"`

	// JWTSecret verifies HS256 bearer tokens.
	JWTSecret string `mapstructure:"JWT_SECRET" required:"true"`

	// TicketStatusPolicy is "visible" or "scoped".
	TicketStatusPolicy string `mapstructure:"TICKET_STATUS_POLICY" default:"visible"`
	// OverdueJobSchedule is a robfig/cron expression; empty disables the job.
	OverdueJobSchedule string `mapstructure:"OVERDUE_JOB_SCHEDULE" default:"@every 1m"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"DB_HOST" default:"localhost"`
	Port     int    `mapstructure:"DB_PORT" default:"5432"`
	User     string `mapstructure:"DB_USER" default:"postgres"`
	Password string `mapstructure:"DB_PASSWORD"`
	Name     string `mapstructure:"DB_NAME" default:"parcelhub"`
	SSLMode  string `mapstructure:"DB_SSLMODE" default:"disable"`
}

// DSN is the PostgreSQL connection string in key=value form.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// BindFlags registers the command line flags Load understands.
func BindFlags(flags *pflag.FlagSet) {
	flags.String("env-file", ".env", "path to a .env file; a missing file is ignored")
	flags.Int("port", 0, "HTTP port, overrides HTTP_PORT")
}

// Load reads the configuration. flags must have been registered with BindFlags and
// parsed. Variables already present in the environment win over the .env file.
func Load(flags *pflag.FlagSet) (*AppConfig, error) {
	envFile, err := flags.GetString("env-file")
	if err != nil {
		return nil, err
	}
	if err = godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading env file %s: %w", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()

	var config AppConfig

	processTags(v, &config)

	if port := flags.Lookup("port"); port != nil && port.Changed {
		if err = v.BindPFlag("HTTP_PORT", port); err != nil {
			return nil, err
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err = validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags binds every field to its environment key and registers defaults.
func processTags(v *viper.Viper, config any) {
	val := reflect.ValueOf(config).Elem()
	t := val.Type()

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			processTags(v, val.Field(i).Addr().Interface())
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		_ = v.BindEnv(key)

		if def := field.Tag.Get("default"); def != "" {
			v.SetDefault(key, def)
		}
	}
}

func validateRequired(config any) error {
	val := reflect.ValueOf(config).Elem()
	t := val.Type()

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
