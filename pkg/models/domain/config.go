package domain

import "fmt"

// Profile is a named set of Aurora credentials read from the profile file.
type Profile struct {
	Name     string
	TenantID string
	APIKey   string
}

func (p Profile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.TenantID)
}
