package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Tables   TablesConfig   `mapstructure:"tables"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig 表工作簿存放位置：local 为本地目录，minio 为对象存储
type StorageConfig struct {
	Driver  string `mapstructure:"driver"`
	DataDir string `mapstructure:"data_dir"`
}

type TablesConfig struct {
	JobOrders          string `mapstructure:"job_orders"`
	JobOrderItems      string `mapstructure:"job_order_items"`
	DeliveryOrders     string `mapstructure:"delivery_orders"`
	DeliveryOrderItems string `mapstructure:"delivery_order_items"`
	ClientMaster       string `mapstructure:"client_master"`
	ItemMaster         string `mapstructure:"item_master"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// RedisConfig Host 为空时使用数据目录下的文件锁；minio 存储必须配置
type RedisConfig struct {
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	LockTTL    time.Duration `mapstructure:"lock_ttl"`
	LockPrefix string        `mapstructure:"lock_prefix"`
}

// DatabaseConfig 审计库；Driver 为空时不记录状态变更
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres/sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	Path            string        `mapstructure:"path"` // sqlite 文件
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// JWTConfig Secret 为空时不校验令牌
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 读取 configs/config.yaml（可缺省），再由环境变量覆盖
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom 读取指定配置文件；path 为空时按默认位置查找
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := repository.DefaultTables()

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.data_dir", ".")

	v.SetDefault("tables.job_orders", defaults.JobOrders)
	v.SetDefault("tables.job_order_items", defaults.JobOrderItems)
	v.SetDefault("tables.delivery_orders", defaults.DeliveryOrders)
	v.SetDefault("tables.delivery_order_items", defaults.DeliveryOrderItems)
	v.SetDefault("tables.client_master", defaults.ClientMaster)
	v.SetDefault("tables.item_master", defaults.ItemMaster)

	v.SetDefault("minio.bucket", "nimo-fab")

	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.lock_ttl", 30*time.Second)
	v.SetDefault("redis.lock_prefix", "fab:lock:")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "data/audit.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.data_dir", "FAB_DATA_DIR")

	// MinIO
	v.BindEnv("minio.endpoint", "MINIO_ENDPOINT")
	v.BindEnv("minio.access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("minio.secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("minio.bucket", "MINIO_BUCKET")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Database
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.path", "DB_PATH")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")
}

// Validate 检查互相依赖的配置项
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "local":
	case "minio":
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("minio.endpoint is required when storage.driver is minio")
		}
		if c.Redis.Host == "" {
			return fmt.Errorf("redis.host is required when storage.driver is minio")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	switch c.Database.Driver {
	case "", "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	return nil
}

// TableLocations 转为仓库使用的表位置
func (c *Config) TableLocations() repository.Tables {
	return repository.Tables{
		JobOrders:          c.Tables.JobOrders,
		JobOrderItems:      c.Tables.JobOrderItems,
		DeliveryOrders:     c.Tables.DeliveryOrders,
		DeliveryOrderItems: c.Tables.DeliveryOrderItems,
		ClientMaster:       c.Tables.ClientMaster,
		ItemMaster:         c.Tables.ItemMaster,
	}
}

// GetEnvOrDefault 获取环境变量，如果不存在则返回默认值
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
