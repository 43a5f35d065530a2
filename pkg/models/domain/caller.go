package domain

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleOfficer = "officer"
)

// Caller describes the acting user as resolved by the identity layer.
// Subject is the upstream user identifier; OrganizationID is zero when
// the user has no organization assignment.
type Caller struct {
	Subject        string
	Role           string
	OrganizationID int64
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
