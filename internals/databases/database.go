package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"campusfee_backend/internals/configs"
	feeModel "campusfee_backend/internals/features/finance/fees/model"
	accountModel "campusfee_backend/internals/features/users/user/model"
	"campusfee_backend/internals/logger"
)

var DB *gorm.DB

func ConnectDB(cfg configs.Config) {
	logger.Log.Info("connecting to PostgreSQL", zap.String("host", cfg.DB.Host), zap.String("db", cfg.DB.Name))

	// statement_timeout matches the HTTP request timeout guard in main.go
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=campusfee&options=-c statement_timeout=5000",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		cfg.DB.SSLMode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(cfg.App.Debug),
	})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	DB = db
	logger.Log.Info("database connected")
}

// AutoMigrate creates accounts before payments so the cascade FK resolves.
func AutoMigrate() {
	if err := DB.AutoMigrate(&accountModel.AccountModel{}, &feeModel.PaymentModel{}); err != nil {
		logger.Log.Fatal("auto-migrate failed", zap.Error(err))
	}
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		logger.Log.Warn("pool tune failed", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			logger.Log.Warn("warm-up ping failed", zap.Error(err))
			return
		}
		DB.Exec("SELECT 1 FROM accounts LIMIT 1")
	}()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
