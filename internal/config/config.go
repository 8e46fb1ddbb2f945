package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/mallcart/internal/log"
)

const (
	DefaultImageHost       = "http://img.happymmall.com/"
	DefaultCatalogCacheTTL = 10 * time.Second
	DefaultCatalogTimeout  = 3 * time.Second

	CatalogSourceDatabase = "database"
	CatalogSourceHttp     = "http"
)

type Application struct {
	Env       string `mapstructure:"env"        json:"env"`
	Host      string `mapstructure:"host"       json:"host"`
	SecretKey string `mapstructure:"secret_key" json:"-"`
	Port      int    `mapstructure:"port"       json:"port"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	TimeZone       string `mapstructure:"timezone"        json:"timezone"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int32  `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int32  `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

func (o Otel) Endpoint() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

type Cart struct {
	ImageHost       string        `mapstructure:"image_host"        json:"image_host"`
	CatalogSource   string        `mapstructure:"catalog_source"    json:"catalog_source"`
	CatalogURL      string        `mapstructure:"catalog_url"       json:"catalog_url"`
	CatalogCacheTTL time.Duration `mapstructure:"catalog_cache_ttl" json:"catalog_cache_ttl"`
	CatalogTimeout  time.Duration `mapstructure:"catalog_timeout"   json:"catalog_timeout"`
}

// AssetBasePath is the prefix clients put in front of product image references.
func (c Cart) AssetBasePath() string {
	if c.ImageHost == "" {
		return DefaultImageHost
	}
	return c.ImageHost
}

type Config struct {
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
	Cart        `mapstructure:"cart"        json:"cart"`
}

var (
	once   sync.Once
	config *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", "production")
	v.SetDefault("application.host", "0.0.0.0")
	v.SetDefault("application.port", 8080)
	v.SetDefault("db.migration_path", "file://migrations")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 2)
	v.SetDefault("otel.host", "otel-collector")
	v.SetDefault("otel.port", 4317)
	v.SetDefault("cart.image_host", DefaultImageHost)
	v.SetDefault("cart.catalog_source", CatalogSourceDatabase)
	v.SetDefault("cart.catalog_cache_ttl", DefaultCatalogCacheTTL)
	v.SetDefault("cart.catalog_timeout", DefaultCatalogTimeout)
}

func InitConfig(c context.Context, filename string) *Config {
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "main InitConfig").
			Str(log.KeyProcess, "init config").
			Str("filename", filename).
			Logger()

		v := viper.GetViper()
		v.SetConfigName(filename)
		v.AddConfigPath("./env")
		v.SetConfigType("yaml")
		v.AutomaticEnv()
		setDefaults(v)

		logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
		logger.Info().Msg("reading config")
		err := v.ReadInConfig()
		if err != nil {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		cfg := Config{}
		err = v.Unmarshal(&cfg)
		if err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger = logger.With().Any(log.KeyConfig, cfg).Logger()
		logger.Info().Msg("unmarshaled config")
	})
	return config
}

// Get returns the config loaded by InitConfig, or nil before it ran.
func Get() *Config {
	return config
}
