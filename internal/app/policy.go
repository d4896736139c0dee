package app

import "taskkeeper/internal/model"

// Identity is the resolved caller of a request: who the token says they
// are. Handlers build it from the claims the JWT middleware attached.
type Identity struct {
	ID       uint
	Username string
	Role     string
}

func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Action is the kind of access being requested against a todo row.
type Action string

const (
	ActionRead    Action = "read"
	ActionReadAll Action = "read_all"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
)

// Allowed decides whether caller may perform action on a row owned by
// ownerID. Admins may read all rows and delete any row; everything else,
// including admin create/update on foreign rows, requires an owner match.
// Any role other than admin is treated as a regular user.
func Allowed(caller Identity, ownerID uint, action Action) bool {
	if caller.IsAdmin() && (action == ActionReadAll || action == ActionDelete) {
		return true
	}
	return caller.ID == ownerID
}
