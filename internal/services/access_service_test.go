package services

import (
	"errors"
	"testing"

	"github.com/mgavilanes/campline-be/internal/access"
)

func TestAccessServicePersistsAdmins(t *testing.T) {
	db := testDB(t)
	svc := NewAccessService(db)

	if _, err := svc.AddAdmin("192.168.1.10"); err != nil {
		t.Fatalf("AddAdmin: %v", err)
	}

	// A fresh service over the same database must see the mutation.
	table, err := NewAccessService(db).GetTable()
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	if len(table.AdminAddresses) != 1 || table.AdminAddresses[0] != "192.168.1.10" {
		t.Errorf("AdminAddresses = %v, want [192.168.1.10]", table.AdminAddresses)
	}

	if _, err := svc.AddAdmin("192.168.1.10"); !errors.Is(err, access.ErrDuplicateAdmin) {
		t.Errorf("duplicate AddAdmin error = %v, want ErrDuplicateAdmin", err)
	}

	if _, err := svc.RemoveAdmin("192.168.1.10"); err != nil {
		t.Fatalf("RemoveAdmin: %v", err)
	}
	table, err = svc.GetTable()
	if err != nil {
		t.Fatalf("GetTable after remove: %v", err)
	}
	if len(table.AdminAddresses) != 0 {
		t.Errorf("AdminAddresses after remove = %v, want empty", table.AdminAddresses)
	}
}

func TestAccessServiceAddScopesRequiresDepartment(t *testing.T) {
	db := testDB(t)
	svc := NewAccessService(db)

	_, err := svc.AddScopes("10.0.0.1", "no-such-department")
	if err == nil {
		t.Fatal("expected error for unknown department")
	}
	if !IsValidation(err) {
		t.Errorf("error = %v, want a validation error", err)
	}
}

func TestAccessServiceScopeBatchIsAtomic(t *testing.T) {
	db := testDB(t)
	departments := NewDepartmentService(db)
	svc := NewAccessService(db)

	sales, err := departments.CreateDepartment("Sales")
	if err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}
	ops, err := departments.CreateDepartment("Operations")
	if err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}

	if _, err := svc.AddScopes("10.0.0.1", sales.ID); err != nil {
		t.Fatalf("AddScopes: %v", err)
	}

	// 10.0.0.1 is already mapped; the whole batch must be rejected and
	// 10.0.0.2 must not be inserted.
	_, err = svc.AddScopes("10.0.0.2, 10.0.0.1", ops.ID)
	var conflict *access.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error = %v, want *access.ConflictError", err)
	}
	if len(conflict.Addresses) != 1 || conflict.Addresses[0] != "10.0.0.1" {
		t.Errorf("conflict addresses = %v, want [10.0.0.1]", conflict.Addresses)
	}

	table, err := svc.GetTable()
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	if got := table.DepartmentByAddress["10.0.0.1"]; got != sales.ID {
		t.Errorf("10.0.0.1 mapped to %q, want %q", got, sales.ID)
	}
	if _, ok := table.DepartmentByAddress["10.0.0.2"]; ok {
		t.Error("10.0.0.2 was inserted despite the batch conflict")
	}
}

func TestAccessServiceClassify(t *testing.T) {
	db := testDB(t)
	departments := NewDepartmentService(db)
	svc := NewAccessService(db)

	sales, err := departments.CreateDepartment("Sales")
	if err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}
	if _, err := svc.AddAdmin("192.168.1.10"); err != nil {
		t.Fatalf("AddAdmin: %v", err)
	}
	// The admin address also gets a department scope; admin access must
	// take precedence.
	if _, err := svc.AddScopes("192.168.1.10 10.0.0.5", sales.ID); err != nil {
		t.Fatalf("AddScopes: %v", err)
	}

	tests := []struct {
		name    string
		address string
		want    access.Classification
	}{
		{"admin wins over scope", "192.168.1.10", access.Classification{Tier: access.TierAdmin}},
		{"scoped address", "10.0.0.5", access.Classification{Tier: access.TierDepartment, DepartmentID: sales.ID}},
		{"unknown address", "172.16.0.9", access.Classification{Tier: access.TierUnclassified}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Classify(tt.address)
			if err != nil {
				t.Fatalf("Classify(%q): %v", tt.address, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.address, got, tt.want)
			}
		})
	}
}
