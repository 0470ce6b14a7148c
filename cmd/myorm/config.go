package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gopsql/myorm/mysql"
)

type config struct {
	DSN      string       `mapstructure:"dsn"`
	Database mysql.Config `mapstructure:"database"`
}

// loadConfig loads configuration with precedence flags > env > config file
// > defaults. Variables of .env and .env.local are added to the environment
// first. The --dsn flag of cmd, if any, is bound to the dsn setting.
func loadConfig(path string, cmd *cobra.Command) (*config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}
	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			return nil, fmt.Errorf("loading .env.local: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault("dsn", "")
	v.SetDefault("database.host", mysql.DefaultHost)
	v.SetDefault("database.port", mysql.DefaultPort)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.pass", "")
	v.SetDefault("database.name", "")

	v.SetEnvPrefix("MYORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if cmd != nil {
		if flag := cmd.Root().PersistentFlags().Lookup("dsn"); flag != nil {
			if err := v.BindPFlag("dsn", flag); err != nil {
				return nil, fmt.Errorf("binding --dsn: %w", err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName(".myorm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var c config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &c, nil
}

// connection returns the connection settings: the dsn setting if set,
// otherwise the database settings.
func (c *config) connection() (mysql.Config, error) {
	if c.DSN != "" {
		return mysql.ParseDSN(c.DSN)
	}
	if c.Database.Name == "" {
		return mysql.Config{}, fmt.Errorf("no database name: use --dsn, MYORM_DSN or MYORM_DATABASE_NAME")
	}
	return c.Database, nil
}
