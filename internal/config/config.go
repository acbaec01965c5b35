package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"bitbuzz/internal/sheet"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
	Admin   AdminConfig   `yaml:"admin"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// StoreConfig selects the worksheet backend. Driver is one of
// memory, mysql, sqlite or workbook.
type StoreConfig struct {
	Driver   string         `yaml:"driver"`
	DSN      string         `yaml:"dsn"`
	Workbook string         `yaml:"workbook"`
	Database DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type AdminConfig struct {
	Password     string        `yaml:"password"`
	PasswordHash string        `yaml:"password_hash"`
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

func Load(configFile string) *Config {
	c := &Config{
		Server: ServerConfig{Port: 9871},
		Log:    LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Store: StoreConfig{
			Driver:   "workbook",
			Workbook: "data/bitbuzz.xlsx",
			Database: DatabaseConfig{Port: 3306, Name: "bitbuzz"},
		},
		Admin: AdminConfig{Password: "1234", JWTSecret: "bitbuzz-admin-secret", TokenTTL: 30 * time.Minute},
	}

	paths := []string{"etc/config-dev.yaml", "/etc/bitbuzz/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	// .env files never override variables already set in the environment
	for _, f := range []string{".env.local", ".env"} {
		godotenv.Load(f)
	}

	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverride(&c.Store.Driver, "STORE_DRIVER")
	envOverride(&c.Store.DSN, "STORE_DSN")
	envOverride(&c.Store.Workbook, "STORE_WORKBOOK")
	envOverride(&c.Store.Database.Host, "DB_HOST")
	envOverride(&c.Store.Database.User, "DB_USER")
	envOverride(&c.Store.Database.Password, "DB_PASS")
	envOverride(&c.Store.Database.Name, "DB_NAME")
	envOverride(&c.Admin.Password, "ADMIN_PASSWORD")
	envOverride(&c.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")
	envOverride(&c.Admin.JWTSecret, "JWT_SECRET")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Store.Database.Port, "DB_PORT")
	envOverrideBool(&c.Metrics.Enabled, "METRICS_ENABLED")

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// OpenBackend builds the worksheet backend named by Store.Driver.
func (c *Config) OpenBackend() (sheet.Backend, error) {
	switch c.Store.Driver {
	case "memory":
		return sheet.NewMemoryBackend(), nil
	case "workbook":
		if c.Store.Workbook == "" {
			return nil, fmt.Errorf("store.workbook is required for the workbook driver")
		}
		return sheet.NewWorkbookBackend(c.Store.Workbook), nil
	case "mysql", "sqlite":
		db, err := c.OpenGormDB()
		if err != nil {
			return nil, err
		}
		return sheet.NewGormBackend(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
}

func (c *Config) OpenGormDB() (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if c.Store.Driver == "sqlite" {
		dsn := c.Store.DSN
		if dsn == "" {
			dsn = "data/bitbuzz.db"
		}
		return gorm.Open(sqlite.Open(dsn), gcfg)
	}

	cfg := gomysql.NewConfig()
	if c.Store.DSN != "" {
		parsed, err := gomysql.ParseDSN(c.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse dsn: %w", err)
		}
		cfg = parsed
	} else {
		cfg.User = c.Store.Database.User
		cfg.Passwd = c.Store.Database.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", c.Store.Database.Host, c.Store.Database.Port)
		cfg.DBName = c.Store.Database.Name
	}
	cfg.ParseTime = true

	connector, err := gomysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	sqlDB := sql.OpenDB(connector)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), gcfg)
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envOverrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
