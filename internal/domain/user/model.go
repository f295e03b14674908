package user

import "strings"

// Principal is the authenticated caller as reported by the account service.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
	IsAdmin     bool
}

// AdminList grants the admin capability by email, case-insensitively.
type AdminList map[string]struct{}

func NewAdminList(emails []string) AdminList {
	out := make(AdminList, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		out[email] = struct{}{}
	}
	return out
}

func (l AdminList) Contains(email string) bool {
	_, ok := l[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Apply marks p as admin when its email is listed. An admin flag set by the
// account service is never cleared.
func (l AdminList) Apply(p Principal) Principal {
	if !p.IsAdmin && l.Contains(p.Email) {
		p.IsAdmin = true
	}
	return p
}
