package domain

// Canonical role names. The three rows are created lazily on first
// registration and are immutable reference data afterwards.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

// Tier is the ordered privilege level derived from a role name.
// The ordering is total: TierUser < TierAdmin < TierSuperadmin.
type Tier int

const (
	TierUnknown Tier = iota
	TierUser
	TierAdmin
	TierSuperadmin
)

var tierByName = map[string]Tier{
	RoleUser:       TierUser,
	RoleAdmin:      TierAdmin,
	RoleSuperadmin: TierSuperadmin,
}

// TierOf maps a stored role name to its tier. Unknown names map to
// TierUnknown, which satisfies no capability check.
func TierOf(name string) Tier {
	return tierByName[name]
}

// AtLeast reports whether t grants the capabilities of required.
func (t Tier) AtLeast(required Tier) bool {
	return t != TierUnknown && t >= required
}

// Role is a named privilege tier persisted as reference data.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tier returns the ordered tier for this role.
func (r Role) Tier() Tier {
	return TierOf(r.Name)
}
