//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"wonderscape/internal/dbmongo"
	"wonderscape/internal/dbmysql"
	"wonderscape/internal/user"
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,
		ProvideJWTManager,
		user.NewUserRepository,
		user.NewUserService,
		ProvideSlots,
		ProvideBlobStore,
		ProvideVideoRepository,
		ProvideVideoService,
		ProvideUserHandler,
		ProvideVideoHandler,
		ProvideUploadHandler,
		ProvideEmbeddedMediaServer,
		ProvideRouter,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}

func InitializeMediaApplication() (*MediaApplication, error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		dbmongo.NewMongoConnection,
		ProvideMediaServer,
		wire.Struct(new(MediaApplication), "*"),
	)
	return &MediaApplication{}, nil
}
