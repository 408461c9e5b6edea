package configs

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"campusfee_backend/internals/logger"
)

type Config struct {
	App struct {
		Env      string `mapstructure:"env"`
		Debug    bool   `mapstructure:"debug"`
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"app"`

	HTTP struct {
		Port           string        `mapstructure:"port"`
		ReadTimeout    time.Duration `mapstructure:"read_timeout"`
		WriteTimeout   time.Duration `mapstructure:"write_timeout"`
		IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
		AllowedOrigins string        `mapstructure:"allowed_origins"`
		TrustedProxies string        `mapstructure:"trusted_proxies"`
	} `mapstructure:"http"`

	DB struct {
		Driver   string `mapstructure:"driver"` // postgres | memory
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"db"`

	JWT struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`

	Fees struct {
		EmailSuffix string `mapstructure:"email_suffix"`
	} `mapstructure:"fees"`

	Seed struct {
		OnStart bool   `mapstructure:"on_start"`
		File    string `mapstructure:"file"`
	} `mapstructure:"seed"`
}

var AppConfig Config

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			logger.Log.Info("no .env file found, using system environment")
		} else {
			logger.Log.Info(".env file loaded")
		}
	} else {
		logger.Log.Info("running on Railway, using system environment")
	}

	AppConfig = Load()

	if err := AppConfig.Validate(); err != nil {
		logger.Log.Fatal("invalid config", zap.Error(err))
	}
	if AppConfig.JWT.Secret == "" {
		logger.Log.Warn("JWT_SECRET is not set, tokens are signed with an empty key (memory driver only)")
	}
	logger.Log.Info("config loaded",
		zap.String("env", AppConfig.App.Env),
		zap.String("db_driver", AppConfig.DB.Driver),
		zap.String("fees_email_suffix", AppConfig.Fees.EmailSuffix),
	)
}

// Load reads the typed configuration from the process environment, applying
// defaults. Keys map to env vars by upper-casing and replacing "." with "_"
// (db.host -> DB_HOST).
func Load() Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")

	v.SetDefault("http.port", "3000")
	_ = v.BindEnv("http.port", "PORT", "HTTP_PORT")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", 90*time.Second)
	v.SetDefault("http.request_timeout", 5*time.Second)
	v.SetDefault("http.allowed_origins", "http://localhost:8081,http://localhost:19006")
	v.SetDefault("http.trusted_proxies", "")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.name", "campusfee")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)

	v.SetDefault("fees.email_suffix", "cambridge.edu.in")

	v.SetDefault("seed.on_start", false)
	v.SetDefault("seed.file", "internals/seeds/users/data_users.json")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Log.Fatal("failed to decode config", zap.Error(err))
	}
	cfg.Fees.EmailSuffix = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(cfg.Fees.EmailSuffix)), "@")
	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// Validate rejects configs the server must not start with. An empty JWT
// secret is only tolerated with the memory driver.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" && c.DB.Driver != "memory" {
		return errors.New("JWT_SECRET must be set when DB_DRIVER is not memory")
	}
	return nil
}

// AllowedOrigins splits the CSV origin list, dropping blanks.
func (c Config) AllowedOrigins() []string {
	return splitCSV(c.HTTP.AllowedOrigins)
}

// TrustedProxies: IP/CIDR proxy yang boleh mengisi X-Forwarded-For.
// Kosong berarti header itu diabaikan.
func (c Config) TrustedProxies() []string {
	return splitCSV(c.HTTP.TrustedProxies)
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
