package cli

import (
	"errors"
	"os"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// config keys, also reachable as DASTCOM_<KEY> environment variables
const (
	keyDir             = "dir"
	keyHeaderCacheSize = "header_cache_size"
	keyPushGateway     = "push_gateway"
)

const defaultHeaderCacheSize = 2

// LoadConfig reads config.yaml from configDir when present. A .env file in
// the working directory is loaded into the environment first.
func LoadConfig(configDir string) (*viper.Viper, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		e := errs.NewReadConfigErr().WithMsg(".env").WithErr(err)
		cliLogger.Error(e.Error(), zap.String(consts.LogFieldPath, ".env"))
		return nil, e
	}

	config := viper.New()
	config.SetEnvPrefix(consts.EnvPrefix)
	config.AutomaticEnv()
	config.SetDefault(keyDir, consts.DefaultDbDir)
	config.SetDefault(keyHeaderCacheSize, defaultHeaderCacheSize)
	config.SetDefault(keyPushGateway, "")

	config.AddConfigPath(configDir)
	config.SetConfigName("config")
	config.SetConfigType("yaml")
	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			e := errs.NewReadConfigErr().WithErr(err)
			cliLogger.Error(e.Error(), zap.String(consts.LogFieldPath, configDir))
			return nil, e
		}
		cliLogger.Debug("no config file, using defaults", zap.String(consts.LogFieldPath, configDir))
	}
	return config, nil
}
