package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConf struct {
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSec  int    `mapstructure:"idle_timeout_seconds"`
	ShutdownSec     int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConf struct {
	PrivateKeyPath   string `mapstructure:"private_key_path"`
	PublicKeyPath    string `mapstructure:"public_key_path"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLDays   int    `mapstructure:"refresh_ttl_days"`
}

type AWSConf struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
}

type S3Conf struct {
	PublicRead bool `mapstructure:"public_read"`
	PresignTTL int  `mapstructure:"presign_ttl_seconds"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type RateLimitConf struct {
	PerMinute int `mapstructure:"per_minute"`
}

type MetricsConf struct {
	Addr string `mapstructure:"addr"`
}

type SecurityConf struct {
	PasswordHashCost int `mapstructure:"password_hash_cost"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	Redis     RedisConf     `mapstructure:"redis"`
	JWT       JWTConf       `mapstructure:"jwt"`
	AWS       AWSConf       `mapstructure:"aws"`
	S3        S3Conf        `mapstructure:"s3"`
	Kafka     KafkaConf     `mapstructure:"kafka"`
	RateLimit RateLimitConf `mapstructure:"rate_limit"`
	Metrics   MetricsConf   `mapstructure:"metrics"`
	Security  SecurityConf  `mapstructure:"security"`

	// derived
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	PresignTTL      time.Duration
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.port", "APP_PORT")
	_ = v.BindEnv("mongodb.uri", "MONGO_URI")
	_ = v.BindEnv("mongodb.database", "MONGO_DB")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("jwt.private_key_path", "JWT_PRIVATE_KEY_PATH")
	_ = v.BindEnv("jwt.public_key_path", "JWT_PUBLIC_KEY_PATH")
	_ = v.BindEnv("aws.region", "AWS_REGION")
	_ = v.BindEnv("aws.bucket", "AWS_BUCKET")
	_ = v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	_ = v.BindEnv("kafka.topic", "KAFKA_TOPIC")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("mongodb.uri is required")
	}
	if cfg.JWT.PrivateKeyPath == "" || cfg.JWT.PublicKeyPath == "" {
		return nil, errors.New("jwt.private_key_path and jwt.public_key_path are required")
	}

	if cfg.App.ReadTimeoutSec == 0 {
		cfg.App.ReadTimeoutSec = 30
	}
	if cfg.App.WriteTimeoutSec == 0 {
		cfg.App.WriteTimeoutSec = 30
	}
	if cfg.App.IdleTimeoutSec == 0 {
		cfg.App.IdleTimeoutSec = 60
	}
	if cfg.App.ShutdownSec == 0 {
		cfg.App.ShutdownSec = 15
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 15
	}
	if cfg.JWT.RefreshTTLDays == 0 {
		cfg.JWT.RefreshTTLDays = 7
	}
	if cfg.S3.PresignTTL == 0 {
		cfg.S3.PresignTTL = 600
	}
	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = 120
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9100"
	}

	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSec) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSec) * time.Second
	cfg.IdleTimeout = time.Duration(cfg.App.IdleTimeoutSec) * time.Second
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSec) * time.Second
	cfg.PresignTTL = time.Duration(cfg.S3.PresignTTL) * time.Second

	return &cfg, nil
}
