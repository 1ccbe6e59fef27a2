package domain

type Permission string

const (
	PermissionViewRow   Permission = "VIEW_ROW"
	PermissionCreateRow Permission = "CREATE_ROW"
	PermissionUpdateRow Permission = "UPDATE_ROW"
	PermissionRemoveRow Permission = "REMOVE_ROW"

	PermissionViewTable   Permission = "VIEW_TABLE"
	PermissionCreateTable Permission = "CREATE_TABLE"
	PermissionUpdateTable Permission = "UPDATE_TABLE"
	PermissionRemoveTable Permission = "REMOVE_TABLE"

	PermissionViewField   Permission = "VIEW_FIELD"
	PermissionCreateField Permission = "CREATE_FIELD"
	PermissionUpdateField Permission = "UPDATE_FIELD"
	PermissionRemoveField Permission = "REMOVE_FIELD"
)

// Caller is the authentication context supplied by the HTTP layer.
type Caller struct {
	UserID        ID
	Permissions   []Permission
	Authenticated bool
}

func Anonymous() Caller {
	return Caller{}
}

func NewAuthenticatedCaller(user ID, permissions ...Permission) Caller {
	return Caller{
		UserID:        user,
		Permissions:   permissions,
		Authenticated: user != "",
	}
}

func (c Caller) HasPermission(permission Permission) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
