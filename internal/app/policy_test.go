package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskkeeper/internal/model"
)

func TestAllowed(t *testing.T) {
	user := Identity{ID: 1, Username: "alice", Role: model.RoleUser}
	admin := Identity{ID: 9, Username: "root", Role: model.RoleAdmin}

	tests := []struct {
		name    string
		caller  Identity
		ownerID uint
		action  Action
		want    bool
	}{
		{"owner reads own row", user, 1, ActionRead, true},
		{"owner updates own row", user, 1, ActionUpdate, true},
		{"owner deletes own row", user, 1, ActionDelete, true},
		{"non-owner read denied", user, 2, ActionRead, false},
		{"non-owner update denied", user, 2, ActionUpdate, false},
		{"non-owner delete denied", user, 2, ActionDelete, false},
		{"admin deletes foreign row", admin, 1, ActionDelete, true},
		{"admin reads all", admin, 0, ActionReadAll, true},
		{"admin update on foreign row denied", admin, 1, ActionUpdate, false},
		{"admin create for foreign owner denied", admin, 1, ActionCreate, false},
		{"admin still owns its own rows", admin, 9, ActionUpdate, true},
		{"unknown role treated as user", Identity{ID: 1, Role: "superuser"}, 2, ActionDelete, false},
		{"unknown role keeps own rows", Identity{ID: 1, Role: "superuser"}, 1, ActionRead, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.caller, tt.ownerID, tt.action))
		})
	}
}
