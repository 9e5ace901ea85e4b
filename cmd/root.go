package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/twin-sim/internal/filtering"
	"github.com/spigell/twin-sim/internal/twin"
)

const (
	app = "twin-sim"
)

type Config struct {
	Data         string              `mapstructure:"data"`
	Output       string              `mapstructure:"output"`
	Catalog      []string            `mapstructure:"catalog"`
	MaxLogLength int                 `mapstructure:"max-log-length"`
	Roles        []*twin.RoleProfile `mapstructure:"roles"`
	Filters      *filtering.Config   `mapstructure:"filters"`
	SkipFilters  []string            `mapstructure:"skip-filters"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "twin-sim builds candidate twins and scores them against job roles",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("data", "TWIN_SIM_DATA"); err != nil {
		log.Fatalf("binding TWIN_SIM_DATA environment variable: %v", err)
	}

	viper.SetDefault("data", "sample_data.json")
	viper.SetDefault("output", "dashboard/results.json")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is twin-sim.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
