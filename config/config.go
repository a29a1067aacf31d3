package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the scheduling engine.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Storage.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Scheduling parameters.
	SlotGranularityMin  int `mapstructure:"SLOT_GRANULARITY_MIN"`
	SearchHorizonDays   int `mapstructure:"SEARCH_HORIZON_DAYS"`
	MaxAlternativeSlots int `mapstructure:"MAX_ALTERNATIVE_SLOTS"`

	// Cancellation fee tiers (hours before start).
	FullFeeWithinHours int `mapstructure:"FULL_FEE_WITHIN_HOURS"`
	HalfFeeWithinHours int `mapstructure:"HALF_FEE_WITHIN_HOURS"`

	// Reminder windows (hours before start) and sweep cadence.
	ReminderWindowLongHours  int `mapstructure:"REMINDER_WINDOW_LONG_HOURS"`
	ReminderWindowShortHours int `mapstructure:"REMINDER_WINDOW_SHORT_HOURS"`
	ReminderSweepIntervalMin int `mapstructure:"REMINDER_SWEEP_INTERVAL_MIN"`

	// Availability cache TTL in seconds (0 disables caching).
	AvailabilityCacheTTLSec int `mapstructure:"AVAILABILITY_CACHE_TTL_SEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "slotwise")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("SLOT_GRANULARITY_MIN", 15)
	viper.SetDefault("SEARCH_HORIZON_DAYS", 30)
	viper.SetDefault("MAX_ALTERNATIVE_SLOTS", 5)
	viper.SetDefault("FULL_FEE_WITHIN_HOURS", 2)
	viper.SetDefault("HALF_FEE_WITHIN_HOURS", 24)
	viper.SetDefault("REMINDER_WINDOW_LONG_HOURS", 24)
	viper.SetDefault("REMINDER_WINDOW_SHORT_HOURS", 2)
	viper.SetDefault("REMINDER_SWEEP_INTERVAL_MIN", 5)
	viper.SetDefault("AVAILABILITY_CACHE_TTL_SEC", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SlotGranularity returns the configured slot step as a duration.
func (c Config) SlotGranularity() time.Duration {
	if c.SlotGranularityMin <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.SlotGranularityMin) * time.Minute
}
