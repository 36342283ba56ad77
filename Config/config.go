package Config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	DatabasePath  string `mapstructure:"DATABASE_PATH"`
	SecretKey     string `mapstructure:"SECRET_KEY"`
	TokenExpiry   int    `mapstructure:"TOKEN_EXPIRY_MINUTES"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

// Load 读取 .env 配置文件，环境变量优先
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// 设置默认值
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("DATABASE_PATH", "conduit.db")
	viper.SetDefault("TOKEN_EXPIRY_MINUTES", 1440) // 24小时
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置失败: %w", err)
		}
		// 配置文件未找到时仅依赖环境变量
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 必须配置项验证
	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY 必须配置")
	}
	return &cfg, nil
}
