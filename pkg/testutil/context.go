package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/riple-app/backend/config"
	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/migration"
	"github.com/riple-app/backend/pkg/authenticator"
	"github.com/riple-app/backend/pkg/logger"
	"github.com/riple-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext gives a context carrying everything a domain needs: an
// in-memory database with migrated tables, test configs, and a logger.
func MockContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	cfg := MockConfigs()
	ctx := context.Background()
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken))

	require.NoError(t, migration.AutoMigrate(ctx))
	return ctx
}

// MockContextWithUserID is MockContext with an already authenticated user.
func MockContextWithUserID(t *testing.T, userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(t), userID)
}

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		ApiServer: config.ServerConfigs{
			Host: "localhost",
			Port: "8080",
		},
		Auth: config.AuthConfigs{
			TokenSecret: "token-secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Hour,
			},
		},
		DailyTask: config.DailyTaskConfigs{
			OpenAIAPIKey: "test-api-key",
			Model:        "gpt-3.5-turbo",
			MaxTokens:    50,
			Temperature:  0.7,
		},
	}
}
