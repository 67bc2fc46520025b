package bootstrap

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"profilehub/internal/config"
	"profilehub/internal/model"
	mysqlClient "profilehub/internal/platform/mysql"
	redisClient "profilehub/internal/platform/redis"
	"profilehub/internal/repository"
	"profilehub/internal/upload"
)

type App struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redisv9.Client
	Uploads *upload.Store

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	uploads, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.AllowedExtensions)
	if err != nil {
		return nil, err
	}

	promoteAdmins(ctx, db, cfg.Admin.Emails)

	return &App{
		Config:    cfg,
		DB:        db,
		Redis:     redisCli,
		Uploads:   uploads,
		StartedAt: time.Now(),
	}, nil
}

// promoteAdmins flips the admin flag on configured accounts. An email that
// has not registered yet is simply skipped; promotion happens again on the
// next start.
func promoteAdmins(ctx context.Context, db *gorm.DB, emails []string) {
	if len(emails) == 0 {
		return
	}
	userRepo := repository.NewUserRepository(db)
	for _, email := range emails {
		if err := userRepo.SetAdmin(ctx, email, true); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("promote admin failed")
		}
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
