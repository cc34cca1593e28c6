package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Dosada05/tournament-manager/config"
	"github.com/Dosada05/tournament-manager/db"
	"github.com/Dosada05/tournament-manager/repositories"
	"github.com/Dosada05/tournament-manager/storage"
)

type storageClients struct {
	client   *s3.Client
	uploader storage.FileUploader
}

func newStorageClients(ctx context.Context, cfg *config.Config) (*storageClients, error) {
	client, err := storage.NewR2Client(ctx, storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudflare R2 client: %w", err)
	}
	uploader, err := storage.NewCloudflareR2Uploader(client, cfg.R2BucketName, cfg.R2PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
	}
	return &storageClients{client: client, uploader: uploader}, nil
}

// openBlobStore returns the configured backend and a func releasing its connection.
func openBlobStore(ctx context.Context, cfg *config.Config, r2 *storageClients, logger *slog.Logger) (repositories.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, connectTimeout)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := repositories.EnsureAppStateSchema(ctx, dbConn); err != nil {
			_ = dbConn.Close()
			return nil, noop, err
		}
		logger.Info("database connection established")
		return repositories.NewPostgresBlobStore(dbConn), func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
				return
			}
			logger.Info("database connection closed")
		}, nil

	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		client, err := repositories.ConnectMongo(connectCtx, cfg.MongoURI)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("mongo connection established", slog.String("database", cfg.MongoDatabase))
		return repositories.NewMongoBlobStore(client.Database(cfg.MongoDatabase)), func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Error("failed to disconnect from mongo", slog.Any("error", err))
			}
		}, nil

	case config.DriverS3:
		if r2 == nil {
			return nil, noop, fmt.Errorf("STORAGE_DRIVER=s3 requires R2 credentials")
		}
		return repositories.NewS3BlobStore(r2.client, cfg.R2BucketName, stateObjectDir), noop, nil

	default:
		logger.Warn("using in-memory storage, state is lost on restart")
		return repositories.NewMemoryBlobStore(), noop, nil
	}
}
