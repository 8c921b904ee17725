package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/traffic-route-matcher/internal/pkg/validator"
)

// applicationName виден в pg_stat_activity
const applicationName = "traffic-route-matcher"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Traffic  TrafficConfig
	Geocode  GeocodeConfig
	Match    MatchConfig
	Monitor  MonitorConfig
	Events   EventsConfig
}

type ServerConfig struct {
	Host string
	Port int `validate:"min=1,max=65535"`
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

// TrafficConfig - источник событий дорожного движения
type TrafficConfig struct {
	APIURL         string `validate:"required,url"`
	APIKey         string
	Regions        []string
	Timezone       string `validate:"required"`
	RequestTimeout time.Duration
}

// GeocodeConfig - геокодер для событий без координат. Пустой ключ отключает геокодирование.
type GeocodeConfig struct {
	BaseURL        string `validate:"required,url"`
	APIKey         string
	CountryCode    string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

type MatchConfig struct {
	RouteDataPath   string
	ToleranceMeters float64 `validate:"gt=0"`
	PreFilter       string  `validate:"oneof=none rtree"`
}

type MonitorConfig struct {
	Enabled  bool
	Interval time.Duration
	RunOnce  bool
}

type EventsConfig struct {
	Table       string `validate:"required"`
	UpsertChunk int    `validate:"min=1"`
}

// Load читает конфигурацию из .env в рабочей директории и переменных окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из указанного файла; отсутствующий файл не ошибка,
// значения берутся из окружения и значений по умолчанию
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Traffic: TrafficConfig{
			APIURL:         strings.TrimRight(v.GetString("TRAFFIC_API_URL"), "/"),
			APIKey:         v.GetString("TRAFFIC_API_KEY"),
			Regions:        parseList(v.GetString("TRAFFIC_REGIONS")),
			Timezone:       v.GetString("TRAFFIC_TIMEZONE"),
			RequestTimeout: time.Duration(v.GetInt("TRAFFIC_REQUEST_TIMEOUT")) * time.Second,
		},
		Geocode: GeocodeConfig{
			BaseURL:        strings.TrimRight(v.GetString("GEOCODE_BASE_URL"), "/"),
			APIKey:         v.GetString("GEOCODE_API_KEY"),
			CountryCode:    v.GetString("GEOCODE_COUNTRY_CODE"),
			RequestTimeout: time.Duration(v.GetInt("GEOCODE_REQUEST_TIMEOUT")) * time.Second,
			CacheTTL:       time.Duration(v.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Match: MatchConfig{
			RouteDataPath:   v.GetString("ROUTE_DATA_PATH"),
			ToleranceMeters: v.GetFloat64("MATCH_TOLERANCE_METERS"),
			PreFilter:       strings.ToLower(v.GetString("MATCH_PREFILTER")),
		},
		Monitor: MonitorConfig{
			Enabled:  !v.IsSet("MONITOR_ENABLED") || v.GetBool("MONITOR_ENABLED"),
			Interval: time.Duration(v.GetInt("MONITOR_INTERVAL")) * time.Second,
			RunOnce:  v.GetBool("MONITOR_RUN_ONCE"),
		},
		Events: EventsConfig{
			Table:       v.GetString("EVENTS_TABLE"),
			UpsertChunk: v.GetInt("EVENTS_UPSERT_CHUNK"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Traffic.APIURL == "" {
		cfg.Traffic.APIURL = "https://api.qldtraffic.qld.gov.au"
	}
	if len(cfg.Traffic.Regions) == 0 {
		cfg.Traffic.Regions = []string{"Gold Coast City", "Sunshine Coast Regional", "Noosa Shire"}
	}
	if cfg.Traffic.Timezone == "" {
		cfg.Traffic.Timezone = "Australia/Brisbane"
	}
	if cfg.Traffic.RequestTimeout == 0 {
		cfg.Traffic.RequestTimeout = 30 * time.Second
	}
	if cfg.Geocode.BaseURL == "" {
		cfg.Geocode.BaseURL = "https://us1.locationiq.com"
	}
	if cfg.Geocode.CountryCode == "" {
		cfg.Geocode.CountryCode = "au"
	}
	if cfg.Geocode.RequestTimeout == 0 {
		cfg.Geocode.RequestTimeout = 10 * time.Second
	}
	if cfg.Geocode.CacheTTL == 0 {
		cfg.Geocode.CacheTTL = 24 * time.Hour
	}
	if cfg.Match.RouteDataPath == "" {
		cfg.Match.RouteDataPath = "data/bus_routes.json"
	}
	if cfg.Match.ToleranceMeters == 0 {
		cfg.Match.ToleranceMeters = 1.0
	}
	if cfg.Match.PreFilter == "" {
		cfg.Match.PreFilter = "none"
	}
	if cfg.Monitor.Interval == 0 {
		cfg.Monitor.Interval = 5 * time.Minute
	}
	if cfg.Events.Table == "" {
		cfg.Events.Table = "traffic_events"
	}
	if cfg.Events.UpsertChunk == 0 {
		cfg.Events.UpsertChunk = 500
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN собирает строку подключения для драйвера pgx
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s application_name=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
		applicationName,
	)
}

func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GeocodingEnabled сообщает, настроен ли ключ геокодера
func (c *Config) GeocodingEnabled() bool {
	return c.Geocode.APIKey != ""
}
