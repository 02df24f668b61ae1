package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Status StatusConfig `mapstructure:"status"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type AdminConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type StatusConfig struct {
	ReportInterval time.Duration `mapstructure:"report_interval"`
}

// Load reads configuration from config.yaml (optional) and the environment.
// The auction listen port is deliberately not here: it is the server's one
// positional argument.
func Load() (*Config, error) {
	viper.SetDefault("server.host", "")
	viper.SetDefault("admin.enabled", true)
	viper.SetDefault("admin.port", 8081)
	viper.SetDefault("status.report_interval", time.Minute)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/auctioneer/")

	viper.AutomaticEnv()
	viper.BindEnv("server.host", "AUCTIONEER_HOST")
	viper.BindEnv("admin.enabled", "AUCTIONEER_ADMIN_ENABLED")
	viper.BindEnv("admin.port", "AUCTIONEER_ADMIN_PORT")
	viper.BindEnv("status.report_interval", "AUCTIONEER_STATUS_REPORT_INTERVAL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file; defaults and environment variables apply.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Host: %q, Admin: %v (port %d), StatusReportInterval: %s",
		c.Server.Host, c.Admin.Enabled, c.Admin.Port, c.Status.ReportInterval)
}
