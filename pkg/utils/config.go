package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Shop      ShopConfig
	Admin     AdminConfig
	Scheduler SchedulerConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ShopConfig describes opening hours and booking rules of the shop.
type ShopConfig struct {
	Timezone       string
	OpenHour       int
	LastSlotHour   int
	SlotMinutes    int
	HorizonDays    int
	UPIHoldMinutes int
	Exclusivity    string
	WizardTTL      time.Duration
}

type AdminConfig struct {
	TokenHash string
}

type SchedulerConfig struct {
	SweepSchedule string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Location loads the shop time zone.
func (c ShopConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load shop timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "barber-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SHOP_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("SHOP_OPEN_HOUR", 7)
	viper.SetDefault("SHOP_LAST_SLOT_HOUR", 20)
	viper.SetDefault("SLOT_MINUTES", 60)
	viper.SetDefault("BOOKING_HORIZON_DAYS", 30)
	viper.SetDefault("UPI_HOLD_MINUTES", 30)
	viper.SetDefault("EXCLUSIVITY", "either")
	viper.SetDefault("WIZARD_TTL_MINUTES", 60)
	viper.SetDefault("SWEEP_SCHEDULE", "@every 1m")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")

	viper.AutomaticEnv()

	// .env is optional, plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			RequestTimeout: time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Shop: ShopConfig{
			Timezone:       viper.GetString("SHOP_TIMEZONE"),
			OpenHour:       viper.GetInt("SHOP_OPEN_HOUR"),
			LastSlotHour:   viper.GetInt("SHOP_LAST_SLOT_HOUR"),
			SlotMinutes:    viper.GetInt("SLOT_MINUTES"),
			HorizonDays:    viper.GetInt("BOOKING_HORIZON_DAYS"),
			UPIHoldMinutes: viper.GetInt("UPI_HOLD_MINUTES"),
			Exclusivity:    viper.GetString("EXCLUSIVITY"),
			WizardTTL:      time.Duration(viper.GetInt("WIZARD_TTL_MINUTES")) * time.Minute,
		},
		Admin: AdminConfig{
			TokenHash: viper.GetString("ADMIN_TOKEN_HASH"),
		},
		Scheduler: SchedulerConfig{
			SweepSchedule: viper.GetString("SWEEP_SCHEDULE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
