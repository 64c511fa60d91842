package cmd

import (
	"parcelhub/internal/pkg/config"

	"github.com/spf13/pflag"
)

// LoadConfig parses the command line of the API server and loads its configuration.
func LoadConfig(name string, args []string) (*config.AppConfig, error) {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	config.BindFlags(flags)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return config.Load(flags)
}
