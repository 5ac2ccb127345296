/*
 * Space Food - Self-Hosted Meal Planning Application
 * Copyright (C) 2025 RGH Software
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as published
 * by the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program. If not, see <https://www.gnu.org/licenses/>.
 */

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the planner's ambient configuration: logging plus the
// durable-store backend selection. Auth, AI provider, HTTP server, and
// object-storage configuration do not apply to this module and have been
// dropped along with the packages they configured.
type Config struct {
	Store   StoreConfig
	Logging LoggingConfig
}

// StoreConfig selects and locates the event log / snapshot store backend.
type StoreConfig struct {
	Backend     string // memory, sqlite, postgres
	SQLitePath  string
	PostgresDSN string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load reads configuration from environment variables and config file.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/weeklymeals")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetEnvPrefix("WEEKLYMEALS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("store.sqlitepath", "./data/weeklymeals.db")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
