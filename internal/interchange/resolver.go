package interchange

import "github.com/mgavilanes/campline-be/internal/models"

// Resolver translates between display names and stable identifiers
// for departments and users. All lookups are total: a missing or
// dangling reference resolves to the empty string. Duplicate names
// resolve to the first occurrence in slice order.
type Resolver struct {
	departments []models.Department
	users       []models.User
}

// NewResolver builds a resolver over the current department and user
// sets. The slices are small; linear scans are fine here.
func NewResolver(departments []models.Department, users []models.User) *Resolver {
	return &Resolver{departments: departments, users: users}
}

// DepartmentName returns the current display name for the ID, or ""
// when no department carries the ID.
func (r *Resolver) DepartmentName(id string) string {
	for _, d := range r.departments {
		if d.ID == id {
			return d.Name
		}
	}
	return ""
}

// DepartmentID returns the ID of the first department whose name is
// an exact, case-sensitive match, or "" when none matches.
func (r *Resolver) DepartmentID(name string) string {
	for _, d := range r.departments {
		if d.Name == name {
			return d.ID
		}
	}
	return ""
}

// UserName returns the current display name for the ID, or "" when no
// user carries the ID.
func (r *Resolver) UserName(id string) string {
	for _, u := range r.users {
		if u.ID == id {
			return u.Name
		}
	}
	return ""
}

// UserID returns the ID of the first user whose name is an exact,
// case-sensitive match, or "" when none matches.
func (r *Resolver) UserID(name string) string {
	for _, u := range r.users {
		if u.Name == name {
			return u.ID
		}
	}
	return ""
}
