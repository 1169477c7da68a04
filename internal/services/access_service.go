package services

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mgavilanes/campline-be/internal/access"
)

// AccessServiceProvider defines the interface for access table services.
type AccessServiceProvider interface {
	GetTable() (access.Table, error)
	AddAdmin(address string) (access.Table, error)
	RemoveAdmin(address string) (access.Table, error)
	AddScopes(addressList, departmentID string) (access.Table, error)
	RemoveScope(address string) (access.Table, error)
	Classify(address string) (access.Classification, error)
}

// AccessService persists the access table and applies its mutations.
// Mutations assume a single administrative writer at a time; the
// duplicate/conflict checks are not transactional across sessions
// beyond what sqlite serializes.
type AccessService struct {
	db *sql.DB
}

// NewAccessService creates a new AccessService.
func NewAccessService(db *sql.DB) *AccessService {
	return &AccessService{db: db}
}

// GetTable loads the persisted access table.
func (s *AccessService) GetTable() (access.Table, error) {
	var adminsJSON, scopesJSON string
	row := s.db.QueryRow("SELECT admins_json, scopes_json FROM access_table WHERE id = 1")
	if err := row.Scan(&adminsJSON, &scopesJSON); err != nil {
		return access.Table{}, fmt.Errorf("load access table: %w", err)
	}

	table := access.NewTable()
	if err := json.Unmarshal([]byte(adminsJSON), &table.AdminAddresses); err != nil {
		return access.Table{}, fmt.Errorf("decode admin addresses: %w", err)
	}
	if err := json.Unmarshal([]byte(scopesJSON), &table.DepartmentByAddress); err != nil {
		return access.Table{}, fmt.Errorf("decode department scopes: %w", err)
	}
	return table, nil
}

func (s *AccessService) saveTable(table access.Table) error {
	adminsJSON, err := json.Marshal(table.AdminAddresses)
	if err != nil {
		return fmt.Errorf("encode admin addresses: %w", err)
	}
	scopesJSON, err := json.Marshal(table.DepartmentByAddress)
	if err != nil {
		return fmt.Errorf("encode department scopes: %w", err)
	}
	_, err = s.db.Exec("UPDATE access_table SET admins_json = ?, scopes_json = ? WHERE id = 1",
		string(adminsJSON), string(scopesJSON))
	return err
}

func (s *AccessService) mutate(apply func(*access.Table) error) (access.Table, error) {
	table, err := s.GetTable()
	if err != nil {
		return access.Table{}, err
	}
	if err := apply(&table); err != nil {
		return access.Table{}, err
	}
	if err := s.saveTable(table); err != nil {
		return access.Table{}, err
	}
	return table, nil
}

// AddAdmin grants unconditional admin access to an address.
func (s *AccessService) AddAdmin(address string) (access.Table, error) {
	return s.mutate(func(t *access.Table) error {
		return t.AddAdmin(address)
	})
}

// RemoveAdmin revokes an address's admin access.
func (s *AccessService) RemoveAdmin(address string) (access.Table, error) {
	return s.mutate(func(t *access.Table) error {
		t.RemoveAdmin(address)
		return nil
	})
}

// AddScopes maps a batch of addresses to a department. The department
// must exist; the batch is atomic.
func (s *AccessService) AddScopes(addressList, departmentID string) (access.Table, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM departments WHERE id = ?", departmentID).Scan(&count); err != nil {
		return access.Table{}, err
	}
	if count == 0 {
		return access.Table{}, Validationf("department %s does not exist", departmentID)
	}
	return s.mutate(func(t *access.Table) error {
		return t.AddScopes(addressList, departmentID)
	})
}

// RemoveScope removes an address's department mapping.
func (s *AccessService) RemoveScope(address string) (access.Table, error) {
	return s.mutate(func(t *access.Table) error {
		t.RemoveScope(address)
		return nil
	})
}

// Classify resolves an address to its access tier using the current
// persisted table.
func (s *AccessService) Classify(address string) (access.Classification, error) {
	table, err := s.GetTable()
	if err != nil {
		return access.Classification{}, err
	}
	return table.Classify(address), nil
}
