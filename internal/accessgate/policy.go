// Package accessgate decides, per request, whether the caller may reach a
// path. One declarative policy table replaces the per-screen role checks the
// product grew organically; ownership rules (who may decide on a proposal)
// deliberately stay out of it - they are business predicates in the
// services, not path policy.
package accessgate

import (
	"strings"

	id "licibit/pkg/domain"
)

// Access classifies who may reach a path.
type Access int

const (
	// AccessPublic allows everyone, session or not.
	AccessPublic Access = iota
	// AccessAuthenticated requires any valid session.
	AccessAuthenticated
	// AccessRole requires a session whose role matches Policy.Role.
	AccessRole
)

// Policy is one row of the table: a path prefix (or exact path) mapped to an
// access class.
type Policy struct {
	Prefix string
	Exact  bool
	Access Access
	Role   id.Role
}

// Table is an ordered policy list. Classification uses longest-prefix match;
// equal-length ties go to the earlier declaration, so declare
// most-specific-first.
type Table struct {
	entries []Policy
}

// NewTable builds a table from policies in declaration order.
func NewTable(policies ...Policy) *Table {
	return &Table{entries: policies}
}

// Public declares a public path prefix.
func Public(prefix string) Policy {
	return Policy{Prefix: prefix, Access: AccessPublic}
}

// PublicExact declares a public exact path. Needed for "/" so the root page
// does not make every unmatched path public by prefix.
func PublicExact(path string) Policy {
	return Policy{Prefix: path, Exact: true, Access: AccessPublic}
}

// Authenticated declares a prefix requiring any session.
func Authenticated(prefix string) Policy {
	return Policy{Prefix: prefix, Access: AccessAuthenticated}
}

// RequireRole declares a prefix restricted to one role.
func RequireRole(prefix string, role id.Role) Policy {
	return Policy{Prefix: prefix, Access: AccessRole, Role: role}
}

// Classify resolves the policy for a path. An unmatched path defaults to
// authenticated: the gate fails closed, never open.
func (t *Table) Classify(path string) Policy {
	best := Policy{Access: AccessAuthenticated}
	bestLen := -1
	for _, p := range t.entries {
		if p.Exact {
			if path == p.Prefix && len(p.Prefix) > bestLen {
				best, bestLen = p, len(p.Prefix)
			}
			continue
		}
		if strings.HasPrefix(path, p.Prefix) && len(p.Prefix) > bestLen {
			best, bestLen = p, len(p.Prefix)
		}
	}
	return best
}

// DefaultTable is the marketplace policy surface: public marketing and
// listing pages plus the public tender-detail pattern, authenticated
// account-scoped pages, and the two role-restricted subtrees.
func DefaultTable() *Table {
	return NewTable(
		PublicExact("/"),
		Public("/login"),
		Public("/register"),
		Public("/auth"),
		Public("/licitaciones"),
		Public("/licitacion/"),
		Public("/especializaciones"),
		Public("/healthz"),
		Public("/metrics"),
		Authenticated("/mis-cotizaciones"),
		Authenticated("/mis-licitaciones"),
		RequireRole("/constructora", id.RoleConstructora),
		RequireRole("/proveedor", id.RoleProveedor),
	)
}
