package seeds

import (
	"context"

	"go.uber.org/zap"

	"campusfee_backend/internals/configs"
	"campusfee_backend/internals/features/finance/fees/repository"
	feeService "campusfee_backend/internals/features/finance/fees/service"
	"campusfee_backend/internals/logger"
	users "campusfee_backend/internals/seeds/users"
)

func RunAllSeeds(ctx context.Context, store repository.Store, hasher feeService.PasswordHasher, cfg configs.Config) {
	//* User
	if _, err := users.SeedUsersFromJSON(ctx, store, hasher, cfg.Fees.EmailSuffix, cfg.Seed.File); err != nil {
		logger.Log.Error("seed users failed", zap.Error(err))
	}
}
