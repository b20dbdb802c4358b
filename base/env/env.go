package env

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultConfigFile = "infra/configs/config.yaml"

// PodName example: k8ssta-marketd-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: k8ssta
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: worker
func AppName() string {
	return os.Getenv("APP_NAME")
}

// LoadConfig parses --config from args and reads the yaml file into viper.
// Environment variables override file keys, `mongo.uri` maps to MONGO_URI.
func LoadConfig(args []string) error {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	path := fs.String("config", defaultConfigFile, "path of the yaml config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if name := EnvName(); name != "" {
		viper.SetDefault("env_name", name)
	}
	if name := AppName(); name != "" {
		viper.SetDefault("app_name", name)
	}
	return viper.ReadInConfig()
}
