package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 儲存 HTTP API、排程器與外部相依的執行設定。
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	DB        DBConfig        `yaml:"db"`
	Auth      AuthConfig      `yaml:"auth"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Reports   ReportsConfig   `yaml:"reports"`
	Seed      SeedConfig      `yaml:"seed"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	DSN          string        `yaml:"dsn"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxIdleTime  time.Duration `yaml:"max_idle_time"`
}

type AuthConfig struct {
	TokenTTL time.Duration `yaml:"token_ttl"`
	Secret   string        `yaml:"secret"`
}

// SchedulerConfig 以 cron 表達式控制各重算節奏。
type SchedulerConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Progress    string `yaml:"progress"`
	Sales       string `yaml:"sales"`
	Metrics     string `yaml:"metrics"`
	Competitors string `yaml:"competitors"`
	DailyReport string `yaml:"daily_report"`
	FullCycle   string `yaml:"full_cycle"`
	Seed        int64  `yaml:"seed"` // 0 表示以時間播種
}

type ReportsConfig struct {
	Dir string `yaml:"dir"`
}

type SeedConfig struct {
	Demo bool `yaml:"demo"`
}

// LoadFromFile 從 YAML 組態檔載入設定。
func LoadFromFile(path string) (Config, error) {
	// 嘗試載入 .env 檔案（如果存在）
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	return cfg, nil
}

func applyDefaults(cfg Config) Config {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 5
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 2
	}
	if cfg.DB.MaxIdleTime == 0 {
		cfg.DB.MaxIdleTime = 15 * time.Minute
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 8 * time.Hour
	}
	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = "dev-secret-change-me"
	}
	if cfg.Scheduler.Progress == "" {
		cfg.Scheduler.Progress = "0 * * * *"
	}
	if cfg.Scheduler.Sales == "" {
		cfg.Scheduler.Sales = "0 */2 * * *"
	}
	if cfg.Scheduler.Metrics == "" {
		cfg.Scheduler.Metrics = "0 */4 * * *"
	}
	if cfg.Scheduler.Competitors == "" {
		cfg.Scheduler.Competitors = "0 */6 * * *"
	}
	if cfg.Scheduler.DailyReport == "" {
		cfg.Scheduler.DailyReport = "0 8 * * *"
	}
	if cfg.Scheduler.FullCycle == "" {
		cfg.Scheduler.FullCycle = "0 18 * * *"
	}
	if cfg.Reports.Dir == "" {
		cfg.Reports.Dir = "reports"
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		cfg.HTTP.Addr = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.HTTP.Addr = ":" + val
	}
	if val := os.Getenv("DB_DSN"); val != "" {
		cfg.DB.DSN = val
	}
	if val := os.Getenv("AUTH_SECRET"); val != "" {
		cfg.Auth.Secret = val
	}
	if val := os.Getenv("TOKEN_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Auth.TokenTTL = d
		}
	}
	if val := os.Getenv("SCHEDULER_ENABLED"); val != "" {
		cfg.Scheduler.Enabled = (val == "true")
	}
	if val := os.Getenv("REPORTS_DIR"); val != "" {
		cfg.Reports.Dir = val
	}
	if val := os.Getenv("SEED_DEMO"); val != "" {
		cfg.Seed.Demo = (val == "true")
	}
	return cfg
}
