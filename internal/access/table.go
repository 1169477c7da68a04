// Package access implements the address-based access table: a set of
// addresses with unconditional administrator access, and a mapping
// from address to the department a viewer at that address is scoped
// to. The table is a pure in-memory structure; callers load it from
// and persist it to storage around each mutation.
package access

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Tier is the access level an address classifies to.
type Tier string

const (
	TierUnclassified Tier = "unclassified"
	TierAdmin        Tier = "admin"
	TierDepartment   Tier = "department"
)

// Classification is the result of looking up an address. DepartmentID
// is set only for TierDepartment.
type Classification struct {
	Tier         Tier   `json:"tier"`
	DepartmentID string `json:"departmentId,omitempty"`
}

// IsAdmin reports whether the classification carries admin access.
func (c Classification) IsAdmin() bool { return c.Tier == TierAdmin }

// ErrDuplicateAdmin is returned when an address already present in
// the admin set is added again.
var ErrDuplicateAdmin = errors.New("address already has admin access")

// ConflictError reports the addresses of a scope batch that already
// have a department mapping. The whole batch is rejected.
type ConflictError struct {
	Addresses []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("addresses already mapped: %s", strings.Join(e.Addresses, ", "))
}

// Table holds the two access structures. Mutations reject duplicates
// and conflicts instead of silently overwriting.
type Table struct {
	AdminAddresses      []string          `json:"adminAddresses"`
	DepartmentByAddress map[string]string `json:"departmentByAddress"`
}

// NewTable returns an empty access table.
func NewTable() Table {
	return Table{DepartmentByAddress: make(map[string]string)}
}

// AddAdmin inserts the address into the admin set. Insertion is
// rejected when the address is already present.
func (t *Table) AddAdmin(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("address must not be empty")
	}
	for _, a := range t.AdminAddresses {
		if a == address {
			return ErrDuplicateAdmin
		}
	}
	t.AdminAddresses = append(t.AdminAddresses, address)
	return nil
}

// RemoveAdmin removes the address from the admin set. Removing an
// absent address is a no-op.
func (t *Table) RemoveAdmin(address string) {
	for i, a := range t.AdminAddresses {
		if a == address {
			t.AdminAddresses = append(t.AdminAddresses[:i], t.AdminAddresses[i+1:]...)
			return
		}
	}
}

// SplitAddressList splits pasted address text on commas and
// whitespace, dropping empty entries.
func SplitAddressList(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// AddScopes maps every address in the list to the department. The
// batch is atomic: when any address already has a mapping the whole
// batch is rejected with a ConflictError naming the conflicting
// addresses, and no address is inserted.
func (t *Table) AddScopes(addressList, departmentID string) error {
	addrs := SplitAddressList(addressList)
	if len(addrs) == 0 {
		return errors.New("no addresses given")
	}
	if departmentID == "" {
		return errors.New("department must not be empty")
	}
	var conflicts []string
	for _, a := range addrs {
		if _, ok := t.DepartmentByAddress[a]; ok {
			conflicts = append(conflicts, a)
		}
	}
	if len(conflicts) > 0 {
		return &ConflictError{Addresses: conflicts}
	}
	if t.DepartmentByAddress == nil {
		t.DepartmentByAddress = make(map[string]string)
	}
	for _, a := range addrs {
		t.DepartmentByAddress[a] = departmentID
	}
	return nil
}

// RemoveScope removes the department mapping for the address.
// Removing an absent address is a no-op.
func (t *Table) RemoveScope(address string) {
	delete(t.DepartmentByAddress, address)
}

// Classify resolves an address to its access tier. Admin access takes
// precedence over department scoping. Any address present in neither
// structure is unclassified, never elevated.
func (t *Table) Classify(address string) Classification {
	for _, a := range t.AdminAddresses {
		if a == address {
			return Classification{Tier: TierAdmin}
		}
	}
	if dept, ok := t.DepartmentByAddress[address]; ok {
		return Classification{Tier: TierDepartment, DepartmentID: dept}
	}
	return Classification{Tier: TierUnclassified}
}
