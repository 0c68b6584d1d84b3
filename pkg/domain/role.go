package domain

// Role is the account type assigned at registration. The two marketplace
// roles keep their Spanish names because they are wire values shared with
// the existing clients.
type Role string

const (
	// RoleConstructora marks tender issuers (construction companies).
	RoleConstructora Role = "constructora"
	// RoleProveedor marks suppliers submitting proposals.
	RoleProveedor Role = "proveedor"
)

// Valid reports whether the role is one of the known marketplace roles.
func (r Role) Valid() bool {
	return r == RoleConstructora || r == RoleProveedor
}
