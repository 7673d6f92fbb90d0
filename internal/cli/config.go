package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "BIASMETRICS"

	cfgKeyPrecision = "precision"
	cfgKeyWorkers   = "workers"
	cfgKeyNormalize = "normalize"
	cfgKeySort      = "sort"
	cfgKeyDelimiter = "delimiter"
	cfgKeyDataDir   = "data_dir"
)

// flagKeys are the config keys that can also be set by a root flag.
var flagKeys = []string{cfgKeyPrecision, cfgKeyWorkers, cfgKeyNormalize, cfgKeySort}

// loadConfig reads config.yaml from configDir with Viper. Values resolve as
// flag > BIASMETRICS_* environment > config.yaml > default. A missing
// config.yaml is not an error.
func loadConfig(configDir string, flags *pflag.FlagSet) (types.Config, error) {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyPrecision, def.Precision)
	v.SetDefault(cfgKeyWorkers, def.Workers)
	v.SetDefault(cfgKeyNormalize, def.Normalize)
	v.SetDefault(cfgKeySort, def.Sort)
	v.SetDefault(cfgKeyDelimiter, def.Delimiter)
	v.SetDefault(cfgKeyDataDir, def.DataDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range flagKeys {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return types.Config{}, sysErr(fmt.Errorf("bind flag %s: %w", key, err))
				}
			}
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, sysErr(fmt.Errorf("read config: %w", err))
		}
	}

	cfg := types.Config{
		Precision: v.GetInt(cfgKeyPrecision),
		Workers:   v.GetInt(cfgKeyWorkers),
		Normalize: v.GetString(cfgKeyNormalize),
		Sort:      v.GetString(cfgKeySort),
		Delimiter: v.GetString(cfgKeyDelimiter),
		DataDir:   v.GetString(cfgKeyDataDir),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
