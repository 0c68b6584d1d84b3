package accessgate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "licibit/pkg/domain"
)

func issuerSession() *Session {
	return &Session{UserID: id.UserID(uuid.New()), Role: id.RoleConstructora}
}

func supplierSession() *Session {
	return &Session{UserID: id.UserID(uuid.New()), Role: id.RoleProveedor}
}

func TestClassify(t *testing.T) {
	table := DefaultTable()

	t.Run("longest prefix wins", func(t *testing.T) {
		table := NewTable(
			Public("/licitacion/"),
			Authenticated("/licitacion/privada/"),
		)
		// Declaration order does not matter when one prefix is longer.
		assert.Equal(t, AccessAuthenticated, table.Classify("/licitacion/privada/42").Access)
		assert.Equal(t, AccessPublic, table.Classify("/licitacion/42").Access)
	})

	t.Run("equal-length tie goes to first declared", func(t *testing.T) {
		table := NewTable(
			RequireRole("/x", id.RoleConstructora),
			Public("/x"),
		)
		got := table.Classify("/x/anything")
		assert.Equal(t, AccessRole, got.Access)
		assert.Equal(t, id.RoleConstructora, got.Role)
	})

	t.Run("root is public only as exact match", func(t *testing.T) {
		assert.Equal(t, AccessPublic, table.Classify("/").Access)
		assert.Equal(t, AccessAuthenticated, table.Classify("/cuenta").Access)
	})

	t.Run("unmatched path defaults to authenticated", func(t *testing.T) {
		assert.Equal(t, AccessAuthenticated, table.Classify("/admin/interno").Access)
	})

	t.Run("role subtrees classify with their role", func(t *testing.T) {
		got := table.Classify("/constructora/proyectos/7/licitaciones")
		assert.Equal(t, AccessRole, got.Access)
		assert.Equal(t, id.RoleConstructora, got.Role)

		got = table.Classify("/proveedor/licitacion/9")
		assert.Equal(t, AccessRole, got.Access)
		assert.Equal(t, id.RoleProveedor, got.Role)
	})

	t.Run("public detail pattern needs no session", func(t *testing.T) {
		assert.Equal(t, AccessPublic, table.Classify("/licitacion/3f2c").Access)
	})
}

func TestDecide(t *testing.T) {
	t.Run("public allows anonymous and authenticated alike", func(t *testing.T) {
		assert.Equal(t, DecisionAllow, Decide(Public("/"), nil))
		assert.Equal(t, DecisionAllow, Decide(Public("/"), issuerSession()))
	})

	t.Run("authenticated without session redirects to login", func(t *testing.T) {
		assert.Equal(t, DecisionRedirectLogin, Decide(Authenticated("/mis-cotizaciones"), nil))
	})

	t.Run("authenticated with session allows", func(t *testing.T) {
		assert.Equal(t, DecisionAllow, Decide(Authenticated("/mis-cotizaciones"), supplierSession()))
	})

	t.Run("role path without session redirects to login", func(t *testing.T) {
		assert.Equal(t, DecisionRedirectLogin, Decide(RequireRole("/constructora", id.RoleConstructora), nil))
	})

	t.Run("matching role allows", func(t *testing.T) {
		assert.Equal(t, DecisionAllow, Decide(RequireRole("/constructora", id.RoleConstructora), issuerSession()))
	})

	t.Run("role mismatch soft-redirects to landing, not login", func(t *testing.T) {
		decision := Decide(RequireRole("/constructora", id.RoleConstructora), supplierSession())
		assert.Equal(t, DecisionRedirectHome, decision)
	})
}
