package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nevrodda11/torny-aws-api/config"
	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/db"
	"github.com/nevrodda11/torny-aws-api/handlers"
	"github.com/nevrodda11/torny-aws-api/logger"
	"github.com/nevrodda11/torny-aws-api/metrics"
	"github.com/nevrodda11/torny-aws-api/realtime"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/routes"
	"github.com/nevrodda11/torny-aws-api/scheduler"
	"github.com/nevrodda11/torny-aws-api/services"
	"github.com/nevrodda11/torny-aws-api/storage"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideDB(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (*sql.DB, error) {
	database, err := db.Connect(cfg.DatabaseURL, constants.DatabaseTimeout, log)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := db.Migrate(database, log); err != nil {
			_ = database.Close()
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := database.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
	return database, nil
}

func cloudflareConfig(cfg *config.Config) storage.CloudflareConfig {
	return storage.CloudflareConfig{
		AccountID:         cfg.CloudflareAccountID,
		APIToken:          cfg.CloudflareAPIToken,
		StreamToken:       cfg.CloudflareStreamToken,
		APIBaseURL:        cfg.CloudflareAPIBaseURL,
		ImagesDeliveryURL: cfg.ImagesDeliveryURL,
	}
}

// ProvideImageUploader wires Cloudflare Images, mirroring originals to R2 when it is configured.
func ProvideImageUploader(cfg *config.Config, log zerolog.Logger) (storage.ImageUploader, error) {
	var archive storage.FileUploader
	if cfg.R2Enabled() {
		var err error
		archive, err = storage.NewR2Archive(context.Background(), storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize R2 archive: %w", err)
		}
		log.Info().Str("bucket", cfg.R2BucketName).Msg("R2 archive enabled")
	}
	return storage.NewCloudflareImages(cloudflareConfig(cfg), archive), nil
}

func ProvideVideoStreamer(cfg *config.Config) storage.VideoStreamer {
	return storage.NewCloudflareStream(cloudflareConfig(cfg))
}

func ProvideAuthService(userRepo repositories.UserRepository, cfg *config.Config) services.AuthService {
	return services.NewAuthService(userRepo, cfg.JWTSecretKey)
}

func ProvidePublisher(hub *realtime.Hub) services.NotificationPublisher {
	return hub
}

// Core is everything needed to serve API requests.
var Core = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(logger.New),
	fx.Invoke(metrics.Register),
	fx.Provide(ProvideDB),
	// storage
	fx.Provide(ProvideImageUploader),
	fx.Provide(ProvideVideoStreamer),
	// repos
	fx.Provide(repositories.NewPostgresUserRepository),
	fx.Provide(repositories.NewPostgresClubRepository),
	fx.Provide(repositories.NewPostgresSportRepository),
	fx.Provide(repositories.NewPostgresTeamRepository),
	fx.Provide(repositories.NewPostgresTournamentRepository),
	fx.Provide(repositories.NewPostgresEntryRepository),
	fx.Provide(repositories.NewPostgresAchievementRepository),
	fx.Provide(repositories.NewPostgresImageRepository),
	fx.Provide(repositories.NewPostgresVideoRepository),
	fx.Provide(repositories.NewPostgresNotificationRepository),
	fx.Provide(repositories.NewPostgresCommentRepository),
	// realtime
	fx.Provide(realtime.NewHub),
	fx.Provide(ProvidePublisher),
	// svc
	fx.Provide(ProvideAuthService),
	fx.Provide(services.NewUserService),
	fx.Provide(services.NewClubService),
	fx.Provide(services.NewSportService),
	fx.Provide(services.NewTeamService),
	fx.Provide(services.NewTournamentService),
	fx.Provide(services.NewEntryService),
	fx.Provide(services.NewAchievementService),
	fx.Provide(services.NewImageService),
	fx.Provide(services.NewVideoService),
	fx.Provide(services.NewNotificationService),
	fx.Provide(services.NewCommentService),
	// handlers
	fx.Provide(handlers.NewHealthHandler),
	fx.Provide(handlers.NewAuthHandler),
	fx.Provide(handlers.NewUserHandler),
	fx.Provide(handlers.NewClubHandler),
	fx.Provide(handlers.NewSportHandler),
	fx.Provide(handlers.NewTeamHandler),
	fx.Provide(handlers.NewTournamentHandler),
	fx.Provide(handlers.NewEntryHandler),
	fx.Provide(handlers.NewAchievementHandler),
	fx.Provide(handlers.NewImageHandler),
	fx.Provide(handlers.NewVideoHandler),
	fx.Provide(handlers.NewNotificationHandler),
	fx.Provide(handlers.NewCommentHandler),
	fx.Provide(handlers.NewWebSocketHandler),
	// router
	fx.Provide(routes.NewRouter),
)

func runHub(lc fx.Lifecycle, hub *realtime.Hub) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func ProvideVideoRefresher(lc fx.Lifecycle, videos services.VideoService, cfg *config.Config, log zerolog.Logger) (*scheduler.VideoRefresher, error) {
	refresher, err := scheduler.NewVideoRefresher(videos, cfg.VideoRefreshInterval, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			refresher.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			return refresher.Stop()
		},
	})
	return refresher, nil
}

// Background holds the long-running workers of the HTTP server process.
var Background = fx.Options(
	fx.Invoke(runHub),
	fx.Provide(ProvideVideoRefresher),
	fx.Invoke(func(*scheduler.VideoRefresher) {}),
)
