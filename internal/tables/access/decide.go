package access

import (
	"fmt"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

type Action string

const (
	ActionView   Action = "VIEW"
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionRemove Action = "REMOVE"
)

type Scope string

const (
	ScopeRow   Scope = "ROW"
	ScopeTable Scope = "TABLE"
	ScopeField Scope = "FIELD"
)

type Operation struct {
	Action Action
	Scope  Scope
}

var (
	ViewRow   = Operation{ActionView, ScopeRow}
	CreateRow = Operation{ActionCreate, ScopeRow}
	UpdateRow = Operation{ActionUpdate, ScopeRow}
	RemoveRow = Operation{ActionRemove, ScopeRow}

	ViewTable   = Operation{ActionView, ScopeTable}
	UpdateTable = Operation{ActionUpdate, ScopeTable}
	RemoveTable = Operation{ActionRemove, ScopeTable}

	ViewField   = Operation{ActionView, ScopeField}
	CreateField = Operation{ActionCreate, ScopeField}
	UpdateField = Operation{ActionUpdate, ScopeField}
	RemoveField = Operation{ActionRemove, ScopeField}
)

// Permission is the slug a caller must hold to perform op on a restricted
// table, e.g. VIEW_ROW or UPDATE_FIELD.
func (op Operation) Permission() domain.Permission {
	return domain.Permission(fmt.Sprintf("%s_%s", op.Action, op.Scope))
}

func (op Operation) String() string {
	return string(op.Permission())
}

type Decision struct {
	Allowed bool
	Reason  *domain.Error
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason *domain.Error) Decision {
	return Decision{Reason: reason}
}

// Err returns nil for an allowed decision and the denial reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

// Decide authorizes op on table for caller. The checks run in a fixed order
// so the first failing one always determines the reported reason:
//
//  1. public tables are readable by anyone
//  2. form tables accept row submissions from anyone
//  3. everything else needs an authenticated caller
//  4. open tables let authenticated callers read and submit rows
//  5. open collaboration lets authenticated callers work on rows
//  6. otherwise the caller needs the permission, ownership or administration
func Decide(table domain.Table, caller domain.Caller, op Operation) Decision {
	config := table.Configuration

	if config.Visibility == domain.VisibilityPublic && op.Action == ActionView {
		return allow()
	}
	if config.Visibility == domain.VisibilityForm && op == CreateRow {
		return allow()
	}

	if !caller.Authenticated {
		return deny(domain.NewError(domain.CodeAuthenticationRequired, "%s on %q requires authentication", op, table.Slug))
	}

	if config.Visibility == domain.VisibilityOpen && (op == ViewRow || op == CreateRow) {
		return allow()
	}
	if config.Collaboration == domain.CollaborationOpen && op.Scope == ScopeRow {
		return allow()
	}

	if caller.HasPermission(op.Permission()) || table.IsOwner(caller.UserID) || table.IsAdministrator(caller.UserID) {
		return allow()
	}

	return deny(domain.NewError(domain.CodeAccessDenied, "%s on %q is not allowed for %q", op, table.Slug, caller.UserID))
}
