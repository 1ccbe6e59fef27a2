package usecases

//go:generate mockgen -source=collaborator_port.go -destination=../../../test/unit/doubles/tables/usecases/collaborator_port_mock.go -package=usecases -mock_names=ObjectStorage=MockObjectStorage,IDGenerator=MockIDGenerator

import (
	"context"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/utils"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

// ObjectStorage checks FILE references. It is only consulted on read.
type ObjectStorage interface {
	Exists(ctx context.Context, ref string) (bool, error)
}

type IDGenerator interface {
	NewID() domain.ID
}

type UUIDGenerator struct{}

var _ IDGenerator = UUIDGenerator{}

func (UUIDGenerator) NewID() domain.ID {
	return domain.ID(utils.GenerateUUID())
}
