package internal

import (
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"

	"gorm.io/datatypes"
)

// Row is stored in the rows_<slug> collection of its table, so it has no
// TableName of its own.
type Row struct {
	ID        string            `json:"id" gorm:"primaryKey"`
	Data      datatypes.JSONMap `json:"data"`
	Creator   string            `json:"creator"`
	Trashed   bool              `json:"trashed" gorm:"not null;default:false"`
	TrashedAt *time.Time        `json:"trashed_at,omitempty"`
	Version   int64             `json:"version" gorm:"not null;default:1"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func FromRow(value domain.Row) Row {
	data := datatypes.JSONMap(value.Data)
	if data == nil {
		data = datatypes.JSONMap{}
	}

	return Row{
		ID:        value.ID.String(),
		Data:      data,
		Creator:   value.Creator.String(),
		Trashed:   value.Trashed,
		TrashedAt: value.TrashedAt,
		Version:   int64(value.Version),
		CreatedAt: value.CreatedAt,
		UpdatedAt: value.UpdatedAt,
	}
}

func (m Row) ToDomain() domain.Row {
	data := map[string]any(m.Data)
	if data == nil {
		data = make(map[string]any)
	}

	return domain.Row{
		ID:      domain.ID(m.ID),
		Data:    data,
		Creator: domain.ID(m.Creator),
		Lifecycle: domain.Lifecycle{
			Trashed:   m.Trashed,
			TrashedAt: m.TrashedAt,
		},
		Version:   domain.Version(m.Version),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
