package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var ctx = context.Background()

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type JWTConfig struct {
	Secret        string `yaml:"secret"`
	AccessExpire  int64  `yaml:"access_expire"`
	RefreshExpire int64  `yaml:"refresh_expire"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// StorageConfig points at an S3-compatible blob store (MinIO in dev).
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// AppConfig holds presentation settings: Host qualifies proxied attachment
// URLs, Locale selects the elapsed-time and date formatting tables.
type AppConfig struct {
	Host   string `yaml:"host"`
	Locale string `yaml:"locale"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	MySQL   MySQLConfig   `yaml:"mysql"`
	Redis   RedisConfig   `yaml:"redis"`
	JWT     JWTConfig     `yaml:"jwt"`
	Storage StorageConfig `yaml:"storage"`
	App     AppConfig     `yaml:"app"`
}

var GlobalConfig *Config
var RedisClient *redis.Client
var Logger *zap.Logger

func InitConfig(path string) {
	data, err := os.ReadFile(path + "/config.yaml")
	if err != nil {
		log.Fatalf("Read config failed: %v", err)
	}
	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		log.Fatalf("Parse config failed: %v", err)
	}
	applyEnvOverrides()
}

// InitLogger sets up the global zap logger.
func InitLogger() {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
}

func InitRedis() {
	opt := &redis.Options{
		Addr:     GlobalConfig.Redis.Addr,
		Password: GlobalConfig.Redis.Password,
		DB:       GlobalConfig.Redis.DB,
	}
	if GlobalConfig.Redis.TLS {
		opt.TLSConfig = &tls.Config{}
	}
	RedisClient = redis.NewClient(opt)
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		panic(fmt.Sprintf("Redis connect failed: %v", err))
	}
	fmt.Println("Redis connected!")
}

func applyEnvOverrides() {
	if GlobalConfig == nil {
		return
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		GlobalConfig.MySQL.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		GlobalConfig.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		GlobalConfig.Redis.Password = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		GlobalConfig.Server.Port = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		GlobalConfig.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ACCESS_EXPIRE"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			GlobalConfig.JWT.AccessExpire = parsed
		}
	}
	if v := os.Getenv("JWT_REFRESH_EXPIRE"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			GlobalConfig.JWT.RefreshExpire = parsed
		}
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		GlobalConfig.Storage.Endpoint = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		GlobalConfig.Storage.Region = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		GlobalConfig.Storage.Bucket = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		GlobalConfig.Storage.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		GlobalConfig.Storage.SecretKey = v
	}
	if v := os.Getenv("APP_HOST"); v != "" {
		GlobalConfig.App.Host = v
	}
	if v := os.Getenv("APP_LOCALE"); v != "" {
		GlobalConfig.App.Locale = v
	}
}
