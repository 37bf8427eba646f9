package auth

import "strings"

// PrivilegeResolver decides whether a verified identity may moderate submissions
type PrivilegeResolver struct {
	moderatorRole    int
	adminEmail       string
	legacyEmailCheck bool
}

// NewPrivilegeResolver creates a new privilege resolver.
//
// A caller moderates when its role claim is at least moderatorRole. With legacyEmailCheck
// enabled, an email equal to adminEmail or containing "admin" also grants the privilege.
func NewPrivilegeResolver(moderatorRole int, adminEmail string, legacyEmailCheck bool) *PrivilegeResolver {
	return &PrivilegeResolver{
		moderatorRole:    moderatorRole,
		adminEmail:       strings.ToLower(strings.TrimSpace(adminEmail)),
		legacyEmailCheck: legacyEmailCheck,
	}
}

// CanModerate reports whether the role or email grants moderation privilege
func (p *PrivilegeResolver) CanModerate(role int, email string) bool {
	if p == nil {
		return false
	}
	if p.moderatorRole > 0 && role >= p.moderatorRole {
		return true
	}
	if !p.legacyEmailCheck {
		return false
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	return (p.adminEmail != "" && email == p.adminEmail) || strings.Contains(email, "admin")
}
