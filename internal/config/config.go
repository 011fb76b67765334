package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Kafka          KafkaConfig          `mapstructure:"kafka"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Gazetteer      GazetteerConfig      `mapstructure:"gazetteer"`
	Providers      ProvidersConfig      `mapstructure:"providers"`
	Monitoring     MonitoringConfig     `mapstructure:"monitoring"`
	Security       SecurityConfig       `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	MaxIdleTime    time.Duration `mapstructure:"max_idle_time"`
	MaxLifetime    time.Duration `mapstructure:"max_lifetime"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topics  struct {
		RecommendationEvents string `mapstructure:"recommendation_events"`
	} `mapstructure:"topics"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RecommendationConfig bounds and weighs the ranking pipeline.
//
// MaxDistanceKm is the default search radius. Earlier drafts of the
// scoring endpoint used both 10 km and 50 km; 10 km is the documented
// default here and deployments widen it explicitly via configuration.
type RecommendationConfig struct {
	MaxDistanceKm     float64               `mapstructure:"max_distance_km" validate:"gt=0"`
	TopN              int                   `mapstructure:"top_n" validate:"gte=0"`
	RegionBoostWeight float64               `mapstructure:"region_boost_weight" validate:"gte=0"`
	Weights           WeightsConfig         `mapstructure:"weights"`
	Personalization   PersonalizationConfig `mapstructure:"personalization"`
	CacheTTL          time.Duration         `mapstructure:"cache_ttl"`
}

// WeightsConfig holds the two default weight profiles: Base applies when
// only the stored aggregate rating is available, Reviewed when the
// catalog also carries per-review mean scores.
type WeightsConfig struct {
	Base     WeightProfileConfig `mapstructure:"base"`
	Reviewed WeightProfileConfig `mapstructure:"reviewed"`
}

type WeightProfileConfig struct {
	Distance float64 `mapstructure:"distance" validate:"gte=0"`
	Price    float64 `mapstructure:"price" validate:"gte=0"`
	Rating   float64 `mapstructure:"rating" validate:"gte=0"`
	Review   float64 `mapstructure:"review" validate:"gte=0"`
}

// PersonalizationConfig drives the heuristic liked-history adjustment of
// the default weight profile. These are fixed multiplicative nudges, not
// a learned model.
type PersonalizationConfig struct {
	PriceThreshold  float64 `mapstructure:"price_threshold"`
	RatingThreshold float64 `mapstructure:"rating_threshold"`
}

type GazetteerConfig struct {
	DefaultLatitude  float64       `mapstructure:"default_latitude" validate:"gte=-90,lte=90"`
	DefaultLongitude float64       `mapstructure:"default_longitude" validate:"gte=-180,lte=180"`
	RefreshInterval  time.Duration `mapstructure:"refresh_interval"`
}

type ProvidersConfig struct {
	Transit ProviderConfig `mapstructure:"transit"`
	Driving ProviderConfig `mapstructure:"driving"`
	Geocode ProviderConfig `mapstructure:"geocode"`
}

type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	// Environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Database defaults
	viper.SetDefault("database.max_connections", 25)
	viper.SetDefault("database.max_idle_time", "15m")
	viper.SetDefault("database.max_lifetime", "1h")
	viper.SetDefault("database.connect_timeout", "10s")

	// Redis defaults
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.timeout", "5s")

	// Kafka defaults
	viper.SetDefault("kafka.topics.recommendation_events", "recommendation-events")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Recommendation defaults
	viper.SetDefault("recommendation.max_distance_km", 10.0)
	viper.SetDefault("recommendation.top_n", 10)
	viper.SetDefault("recommendation.region_boost_weight", 0.2)
	viper.SetDefault("recommendation.weights.base.distance", 0.3)
	viper.SetDefault("recommendation.weights.base.price", 0.2)
	viper.SetDefault("recommendation.weights.base.rating", 0.5)
	viper.SetDefault("recommendation.weights.base.review", 0.0)
	viper.SetDefault("recommendation.weights.reviewed.distance", 0.3)
	viper.SetDefault("recommendation.weights.reviewed.price", 0.1)
	viper.SetDefault("recommendation.weights.reviewed.rating", 0.3)
	viper.SetDefault("recommendation.weights.reviewed.review", 0.2)
	viper.SetDefault("recommendation.personalization.price_threshold", 100000.0)
	viper.SetDefault("recommendation.personalization.rating_threshold", 4.0)
	viper.SetDefault("recommendation.cache_ttl", "10m")

	// Gazetteer defaults: Daejeon city hall
	viper.SetDefault("gazetteer.default_latitude", 36.3504)
	viper.SetDefault("gazetteer.default_longitude", 127.3845)
	viper.SetDefault("gazetteer.refresh_interval", "1h")

	// Routing provider defaults
	viper.SetDefault("providers.transit.timeout", "4s")
	viper.SetDefault("providers.driving.timeout", "4s")
	viper.SetDefault("providers.geocode.timeout", "4s")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"Origin", "Content-Type", "Accept"})
}
