//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/persistence"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"

	"github.com/google/wire"
)

var RegistrySet = wire.NewSet(
	provideAppConfig,
	provideDatabase,
	provideHandleCache,
	provideGenerationStore,
	provideObjectStorage,
	provideMeterProvider,
	provideRecorder,
	provideIDGenerator,
	provideRegistryConfig,
	persistence.NewRepositories,
	usecases.NewRegistry,
)

func InitializeCore() (*Core, func(), error) {
	wire.Build(
		RegistrySet,
		usecases.NewTableService,
		wire.Bind(new(usecases.TableService), new(*usecases.SimpleTableService)),
		usecases.NewFieldService,
		wire.Bind(new(usecases.FieldService), new(*usecases.SimpleFieldService)),
		wire.Struct(new(Core), "*"),
	)
	return nil, nil, nil
}
