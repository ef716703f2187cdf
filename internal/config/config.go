package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Log         LogConfig
	Snapshot    SnapshotConfig
	Search      SearchConfig
	CostBenefit CostBenefitConfig
	SeoulAPI    SeoulAPIConfig
	Worker      WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
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

type CacheConfig struct {
	NearbyCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// SnapshotConfig - какие виды сущностей загружаются в память при старте
type SnapshotConfig struct {
	Kinds       []string
	LoadTimeout time.Duration
}

// SearchConfig - ограничения на радиус поиска на границе API
type SearchConfig struct {
	DefaultRadiusKm float64
	MaxRadiusKm     float64
}

type CostBenefitConfig struct {
	FuelEfficiencyKmPerLiter float64
	FixedRefuelLiters        float64
}

// SeoulAPIConfig - открытый API Сеула (GetParkInfo) для синхронизации парковок
type SeoulAPIConfig struct {
	APIKey         string
	BaseURL        string
	PageSize       int
	PageDelay      time.Duration
	RequestTimeout time.Duration
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	SyncInterval      time.Duration
	StreamReadTimeout time.Duration
}

// Load читает .env (если он есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из указанного env-файла и окружения.
// Отсутствующий файл не считается ошибкой.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
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
		Cache: CacheConfig{
			NearbyCacheTTL: time.Duration(v.GetInt("NEARBY_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Snapshot: SnapshotConfig{
			Kinds:       parseList(v.GetString("SNAPSHOT_KINDS")),
			LoadTimeout: time.Duration(v.GetInt("SNAPSHOT_LOAD_TIMEOUT")) * time.Second,
		},
		Search: SearchConfig{
			DefaultRadiusKm: v.GetFloat64("SEARCH_DEFAULT_RADIUS_KM"),
			MaxRadiusKm:     v.GetFloat64("SEARCH_MAX_RADIUS_KM"),
		},
		CostBenefit: CostBenefitConfig{
			FuelEfficiencyKmPerLiter: v.GetFloat64("FUEL_EFFICIENCY_KM_PER_LITER"),
			FixedRefuelLiters:        v.GetFloat64("FIXED_REFUEL_LITERS"),
		},
		SeoulAPI: SeoulAPIConfig{
			APIKey:         v.GetString("SEOUL_PARKING_API_KEY"),
			BaseURL:        v.GetString("SEOUL_API_BASE_URL"),
			PageSize:       v.GetInt("SEOUL_API_PAGE_SIZE"),
			PageDelay:      time.Duration(v.GetInt("SEOUL_API_PAGE_DELAY")) * time.Millisecond,
			RequestTimeout: time.Duration(v.GetInt("SEOUL_API_TIMEOUT")) * time.Second,
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			SyncInterval:      time.Duration(v.GetInt("WORKER_SYNC_INTERVAL")) * time.Minute,
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// Set default values if not provided
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.NearbyCacheTTL == 0 {
		c.Cache.NearbyCacheTTL = 60 * time.Second
	}
	if len(c.Snapshot.Kinds) == 0 {
		c.Snapshot.Kinds = []string{"fuel", "parking"}
	}
	if c.Snapshot.LoadTimeout == 0 {
		c.Snapshot.LoadTimeout = 30 * time.Second
	}
	if c.Search.DefaultRadiusKm == 0 {
		c.Search.DefaultRadiusKm = 3
	}
	if c.Search.MaxRadiusKm == 0 {
		c.Search.MaxRadiusKm = 20
	}
	if c.CostBenefit.FuelEfficiencyKmPerLiter == 0 {
		c.CostBenefit.FuelEfficiencyKmPerLiter = 12
	}
	if c.CostBenefit.FixedRefuelLiters == 0 {
		c.CostBenefit.FixedRefuelLiters = 40
	}
	if c.SeoulAPI.BaseURL == "" {
		c.SeoulAPI.BaseURL = "http://openapi.seoul.go.kr:8088"
	}
	if c.SeoulAPI.PageSize == 0 {
		c.SeoulAPI.PageSize = 1000
	}
	if c.SeoulAPI.PageDelay == 0 {
		c.SeoulAPI.PageDelay = 100 * time.Millisecond
	}
	if c.SeoulAPI.RequestTimeout == 0 {
		c.SeoulAPI.RequestTimeout = 30 * time.Second
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "nearby-snapshot"
	}
	if c.Worker.SyncInterval == 0 {
		c.Worker.SyncInterval = 24 * time.Hour
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
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

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
