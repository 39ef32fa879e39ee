package model

// CompanyRole scopes authorization inside a single tenant.
type CompanyRole string

const (
	CompanyRoleViewer CompanyRole = "viewer"
	CompanyRoleMember CompanyRole = "member"
	CompanyRoleAdmin  CompanyRole = "admin"
	CompanyRoleOwner  CompanyRole = "owner"
)

var companyRoleRank = map[CompanyRole]int{
	CompanyRoleViewer: 0,
	CompanyRoleMember: 1,
	CompanyRoleAdmin:  2,
	CompanyRoleOwner:  3,
}

// Rank returns the position of the role in the hierarchy, or -1 for an
// unknown role.
func (r CompanyRole) Rank() int {
	if rank, ok := companyRoleRank[r]; ok {
		return rank
	}
	return -1
}

func (r CompanyRole) Valid() bool {
	_, ok := companyRoleRank[r]
	return ok
}

// AtLeast reports whether r ranks equal to or above min. Unknown roles never
// satisfy a requirement.
func (r CompanyRole) AtLeast(min CompanyRole) bool {
	return r.Valid() && min.Valid() && r.Rank() >= min.Rank()
}

// PlatformRole authorizes cross-tenant operations. It is only meaningful on
// memberships inside the operator company.
type PlatformRole string

const (
	PlatformRoleViewer     PlatformRole = "viewer"
	PlatformRoleSupport    PlatformRole = "support"
	PlatformRoleAdmin      PlatformRole = "admin"
	PlatformRoleSuperAdmin PlatformRole = "super_admin"
)

var platformRoleRank = map[PlatformRole]int{
	PlatformRoleViewer:     0,
	PlatformRoleSupport:    1,
	PlatformRoleAdmin:      2,
	PlatformRoleSuperAdmin: 3,
}

func (r PlatformRole) Rank() int {
	if rank, ok := platformRoleRank[r]; ok {
		return rank
	}
	return -1
}

func (r PlatformRole) Valid() bool {
	_, ok := platformRoleRank[r]
	return ok
}

func (r PlatformRole) AtLeast(min PlatformRole) bool {
	return r.Valid() && min.Valid() && r.Rank() >= min.Rank()
}

// HasPlatformRole is the nil-safe form of AtLeast for optional roles.
func HasPlatformRole(r *PlatformRole, min PlatformRole) bool {
	return r != nil && r.AtLeast(min)
}
