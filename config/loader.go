package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps command line flags onto their config keys
var flagKeys = map[string]string{
	"ci-config":          "ciConfig",
	"repo-dir":           "repoDir",
	"report-file":        "reportFile",
	"metrics-file":       "metricsFile",
	"unstable-exit-code": "unstableExitCode",
	"request-retries":    "requestRetries",
	"base":               "baseCommit",
	"target":             "targetCommit",
	"log-file":           "LogFile",
}

// LoadPetciConfig loads config from command instance to predefined config variables
func LoadPetciConfig(cmd *cobra.Command) (*PetciConfig, error) {
	err := viper.BindPFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	// default viper configs
	viper.SetEnvPrefix("PETCI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// set default configs
	setPetciDefaultConfig()

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".petci-app")
		viper.AddConfigPath("./")
		viper.AddConfigPath("$HOME/.petci")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	cfg, err := populatePetciConfig(new(PetciConfig))
	if err != nil {
		return nil, err
	}
	cfg.ThresholdSet = viper.IsSet("threshold")
	return cfg, nil
}
