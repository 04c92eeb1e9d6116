package config

import (
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
	"github.com/spf13/viper"
)

func setPetciDefaultConfig() {
	viper.SetDefault("LogConfig.Instance", "zap")
	viper.SetDefault("LogConfig.EnableConsole", true)
	viper.SetDefault("LogConfig.ConsoleJSONFormat", false)
	viper.SetDefault("LogConfig.ConsoleLevel", "info")
	viper.SetDefault("LogConfig.EnableFile", false)
	viper.SetDefault("LogConfig.FileJSONFormat", true)
	viper.SetDefault("LogConfig.FileLevel", "debug")
	viper.SetDefault("LogConfig.FileLocation", "./petci.log")
	viper.SetDefault("Env", "prod")
	viper.SetDefault("Verbose", false)
	viper.SetDefault("ciConfig", global.DefaultCIConfigFile)
	viper.SetDefault("repoDir", ".")
	viper.SetDefault("Git.TokenType", "Bearer")
}
