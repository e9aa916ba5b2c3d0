package config

import (
	"errors"
	"fmt"
	"os"

	"hotelms/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	API        APIConfig        `yaml:"api"`
	Hotel      HotelConfig      `yaml:"hotel"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Rooms      []models.Room    `yaml:"rooms"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type APIConfig struct {
	Enabled   bool               `yaml:"enabled"`
	HTTP      APIHTTPConfig      `yaml:"http"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIHTTPConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	HeaderExtra  string         `yaml:"header_extra"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key         string   `yaml:"key"`
	Extra       string   `yaml:"extra"`
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// HotelConfig holds front-desk policy surfaced through the chat widget and
// applied to booking validation.
type HotelConfig struct {
	CheckInTime       string `yaml:"check_in_time"`
	CheckOutTime      string `yaml:"check_out_time"`
	MaxAdvanceDays    int    `yaml:"max_advance_days"`
	Currency          string `yaml:"currency"`
	SupportEmail      string `yaml:"support_email"`
	SupportPhone      string `yaml:"support_phone"`
	ChatRateMessages  int    `yaml:"chat_rate_messages"`
	ChatRateWindowSec int    `yaml:"chat_rate_window_sec"`
	ChatStateTTLSec   int    `yaml:"chat_state_ttl_sec"`
}

// CatalogEntry describes one room type: its default nightly rate, amenity
// list and image reference. Injected from config so the texts can be
// replaced or localized per deployment.
type CatalogEntry struct {
	NightlyRate float64  `yaml:"nightly_rate"`
	Amenities   []string `yaml:"amenities"`
	Image       string   `yaml:"image"`
}

type CatalogConfig map[string]CatalogEntry

// Entry looks up a room type; ok is false for unknown types so callers
// decide their own fallback.
func (c CatalogConfig) Entry(roomType string) (CatalogEntry, bool) {
	entry, ok := c[roomType]
	return entry, ok
}

func Load(configPath string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Подставляем переменные окружения до разбора YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	for roomType, entry := range c.Catalog {
		if !models.IsKnownRoomType(roomType) {
			return fmt.Errorf("unknown room type in catalog: %s", roomType)
		}
		if entry.NightlyRate < 0 {
			return fmt.Errorf("negative nightly rate for room type %s", roomType)
		}
	}

	return ValidateRooms(c.Rooms)
}

// ValidateRooms rejects seed lists with empty or duplicate room numbers.
func ValidateRooms(rooms []models.Room) error {
	numbers := make(map[string]bool)
	for _, room := range rooms {
		if room.Number == "" {
			return errors.New("room with empty number in seed list")
		}
		if numbers[room.Number] {
			return fmt.Errorf("duplicate room number found: %s", room.Number)
		}
		if room.Price < 0 {
			return fmt.Errorf("negative price for room %s", room.Number)
		}
		numbers[room.Number] = true
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.API.HTTP.Port == 0 {
		c.API.HTTP.Port = 8080
	}
	if !c.API.HTTP.Enabled && c.API.Enabled {
		c.API.HTTP.Enabled = true
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.API.Auth.HeaderExtra == "" {
		c.API.Auth.HeaderExtra = "x-api-extra"
	}

	// Front-desk defaults
	if c.Hotel.CheckInTime == "" {
		c.Hotel.CheckInTime = "14:00"
	}
	if c.Hotel.CheckOutTime == "" {
		c.Hotel.CheckOutTime = "11:00"
	}
	if c.Hotel.MaxAdvanceDays == 0 {
		c.Hotel.MaxAdvanceDays = models.DefaultMaxAdvanceDays
	}
	if c.Hotel.Currency == "" {
		c.Hotel.Currency = "USD"
	}
	if c.Hotel.ChatRateMessages == 0 {
		c.Hotel.ChatRateMessages = models.ChatRateLimitMessages
	}
	if c.Hotel.ChatRateWindowSec == 0 {
		c.Hotel.ChatRateWindowSec = models.ChatRateLimitWindow
	}
	if c.Hotel.ChatStateTTLSec == 0 {
		c.Hotel.ChatStateTTLSec = models.DefaultChatStateTTL
	}
}
