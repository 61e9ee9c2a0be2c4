package wire

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"wonderscape/internal/common"
	"wonderscape/internal/config"
	"wonderscape/internal/dbmongo"
	"wonderscape/internal/logging"
	"wonderscape/internal/media"
	"wonderscape/internal/server"
	"wonderscape/internal/storage"
	"wonderscape/internal/user"
	"wonderscape/internal/video"
)

// setupTimeout bounds index creation and backend probing at startup.
const setupTimeout = 15 * time.Second

// Application is everything cmd/api needs to serve.
type Application struct {
	Config *config.Config
	Log    zerolog.Logger
	DB     *gorm.DB
	Mongo  *dbmongo.MongoClient
	Router http.Handler
}

// MediaApplication backs the standalone GridFS file server.
type MediaApplication struct {
	Config *config.Config
	Log    zerolog.Logger
	Mongo  *dbmongo.MongoClient
	Server *media.HTTPServer
}

func ProvideConfig() *config.Config {
	return config.LoadConfig()
}

func ProvideLogger(cfg *config.Config) zerolog.Logger {
	logging.Configure(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	return logging.Base()
}

func ProvideJWTManager(cfg *config.Config) *common.JWTManager {
	return common.NewJWTManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Hour, cfg.Auth.Issuer)
}

func ProvideSlots(mongoClient *dbmongo.MongoClient, cfg *config.Config) (*storage.Slots, error) {
	slots := storage.NewSlots(mongoClient.Database, time.Duration(cfg.Storage.SlotTTLMinutes)*time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if err := slots.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return slots, nil
}

func ProvideBlobStore(cfg *config.Config, mongoClient *dbmongo.MongoClient) (storage.BlobStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	return storage.NewBlobStore(ctx, cfg, mongoClient)
}

func ProvideVideoRepository(mongoClient *dbmongo.MongoClient) (video.VideoRepository, error) {
	repo := video.NewVideoRepository(mongoClient.Database)

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func ProvideVideoService(
	repo video.VideoRepository,
	slots *storage.Slots,
	users user.UserService,
	blobs storage.BlobStore,
	cfg *config.Config,
	log zerolog.Logger,
) video.VideoService {
	return video.NewVideoService(repo, slots, users, blobs, cfg.UploadURL,
		log.With().Str("component", "video").Logger())
}

func ProvideUserHandler(svc user.UserService, log zerolog.Logger) *user.Handler {
	return user.NewHandler(svc, log.With().Str("component", "user").Logger())
}

func ProvideVideoHandler(svc video.VideoService, log zerolog.Logger) *video.Handler {
	return video.NewHandler(svc, log.With().Str("component", "video").Logger())
}

func ProvideUploadHandler(slots *storage.Slots, blobs storage.BlobStore, cfg *config.Config, log zerolog.Logger) *media.UploadHandler {
	return media.NewUploadHandler(slots, blobs, time.Duration(cfg.Server.UploadTimeout)*time.Minute,
		log.With().Str("component", "upload").Logger())
}

func ProvideMediaServer(mongoClient *dbmongo.MongoClient, log zerolog.Logger) *media.HTTPServer {
	return media.NewHTTPServer(dbmongo.NewMediaStorage(mongoClient), log.With().Str("component", "media").Logger())
}

// ProvideEmbeddedMediaServer serves GridFS files from the API process. With
// the s3 backend clients fetch presigned URLs directly and nothing is mounted.
func ProvideEmbeddedMediaServer(cfg *config.Config, mongoClient *dbmongo.MongoClient, log zerolog.Logger) *media.HTTPServer {
	if cfg.Storage.Backend != config.StorageGridFS {
		return nil
	}
	return ProvideMediaServer(mongoClient, log)
}

func ProvideRouter(
	cfg *config.Config,
	log zerolog.Logger,
	jwt *common.JWTManager,
	users *user.Handler,
	videos *video.Handler,
	uploads *media.UploadHandler,
	mediaServer *media.HTTPServer,
	db *gorm.DB,
	mongoClient *dbmongo.MongoClient,
) http.Handler {
	return server.NewRouter(server.Deps{
		Users:           users,
		Videos:          videos,
		Uploads:         uploads,
		Media:           mediaServer,
		JWT:             jwt,
		UploadRateLimit: cfg.Server.UploadRateLimit,
		EnableMetrics:   cfg.Server.EnableMetrics,
		Log:             log.With().Str("component", "http").Logger(),
		Ready:           readiness(db, mongoClient),
	})
}

func readiness(db *gorm.DB, mongoClient *dbmongo.MongoClient) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := mongoClient.Ping(ctx); err != nil {
			return fmt.Errorf("mongodb: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("mysql: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("mysql: %w", err)
		}
		return nil
	}
}
