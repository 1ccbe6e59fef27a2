package domain

import "time"

type LifecycleState string

const (
	LifecycleActive  LifecycleState = "active"
	LifecycleTrashed LifecycleState = "trashed"
)

// Lifecycle is the soft delete state shared by tables, fields, rows,
// reactions and category nodes. The only transitions are
// active -> trashed and trashed -> active.
type Lifecycle struct {
	Trashed   bool
	TrashedAt *time.Time
}

func (l Lifecycle) State() LifecycleState {
	if l.Trashed {
		return LifecycleTrashed
	}
	return LifecycleActive
}

func (l Lifecycle) IsTrashed() bool {
	return l.Trashed
}

// Trash moves the entity to the trashed state. It reports false, leaving the
// original timestamp untouched, when the entity was already trashed.
func (l *Lifecycle) Trash(now time.Time) bool {
	if l.Trashed {
		return false
	}
	at := now.UTC()
	l.Trashed = true
	l.TrashedAt = &at
	return true
}

// Restore reports false when there was nothing to restore.
func (l *Lifecycle) Restore() bool {
	if !l.Trashed {
		return false
	}
	l.Trashed = false
	l.TrashedAt = nil
	return true
}
