package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Reaper ReaperConfig
	Chat   ChatConfig
	Log    LogConfig
}

type ServerConfig struct {
	Address string
	Port    int    // 設定後覆蓋 Address 的埠號
	Mode    string // gin 模式: debug / release / test
}

type DBConfig struct {
	Driver   string // postgres 或 sqlite
	URL      string // 完整 DSN，設定後忽略 Host 等欄位
	Host     string
	User     string
	Password string
	Name     string
	Port     int
	Path     string // sqlite 檔案路徑
}

// ReaperConfig 控制閒置參與者的清理週期
type ReaperConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

type ChatConfig struct {
	Broadcast string // 廣播對象的保留名稱
}

type LogConfig struct {
	Level string
}

// Load 讀取設定，優先順序為 環境變數 > config.yaml > 預設值
func Load() (*Config, error) {
	// .env 不存在時直接使用系統環境變數
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./pkg/config")
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.Server.Port != 0 {
		config.Server.Address = fmt.Sprintf(":%d", config.Server.Port)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.port", 0)
	v.SetDefault("server.mode", "release")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "chat_relay")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.path", "chat_relay.db")
	v.SetDefault("reaper.interval", 15*time.Second)
	v.SetDefault("reaper.timeout", 10*time.Second)
	v.SetDefault("chat.broadcast", "Todos")
	v.SetDefault("log.level", "info")
}

// bindLegacyEnv 綁定沒有前綴的部署環境變數名稱
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"db.url":      "DATABASE_URL",
		"db.name":     "DATABASE_NAME",
		"server.port": "PORT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return err
		}
	}
	return nil
}
