package persistence

import (
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"
)

// NewRepositories migrates the metadata tables and returns every repository
// the registry needs.
func NewRepositories(orm sql.ORM) (usecases.Repositories, error) {
	tables, err := NewTableRepository(orm)
	if err != nil {
		return usecases.Repositories{}, err
	}
	fields, err := NewFieldRepository(orm)
	if err != nil {
		return usecases.Repositories{}, err
	}
	reactions, err := NewReactionRepository(orm)
	if err != nil {
		return usecases.Repositories{}, err
	}
	evaluations, err := NewEvaluationRepository(orm)
	if err != nil {
		return usecases.Repositories{}, err
	}

	return usecases.Repositories{
		Tables:      tables,
		Fields:      fields,
		Collections: NewRowCollections(orm),
		Reactions:   reactions,
		Evaluations: evaluations,
	}, nil
}
