package access

import (
	"errors"
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	table := NewTable()
	if err := table.AddAdmin("192.168.1.10"); err != nil {
		t.Fatalf("AddAdmin failed: %v", err)
	}
	if err := table.AddScopes("10.0.0.5", "dept-1"); err != nil {
		t.Fatalf("AddScopes failed: %v", err)
	}

	cases := []struct {
		name    string
		address string
		want    Classification
	}{
		{name: "admin address", address: "192.168.1.10", want: Classification{Tier: TierAdmin}},
		{name: "scoped address", address: "10.0.0.5", want: Classification{Tier: TierDepartment, DepartmentID: "dept-1"}},
		{name: "unknown address", address: "172.16.0.1", want: Classification{Tier: TierUnclassified}},
		{name: "empty address", address: "", want: Classification{Tier: TierUnclassified}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := table.Classify(tc.address); got != tc.want {
				t.Fatalf("Classify(%q) = %+v, want %+v", tc.address, got, tc.want)
			}
		})
	}
}

func TestClassifyAdminPrecedence(t *testing.T) {
	table := NewTable()
	if err := table.AddAdmin("10.0.0.9"); err != nil {
		t.Fatalf("AddAdmin failed: %v", err)
	}
	if err := table.AddScopes("10.0.0.9", "dept-1"); err != nil {
		t.Fatalf("AddScopes failed: %v", err)
	}

	got := table.Classify("10.0.0.9")
	if got.Tier != TierAdmin {
		t.Fatalf("expected admin precedence, got %+v", got)
	}
}

func TestAddAdminDuplicate(t *testing.T) {
	table := NewTable()
	if err := table.AddAdmin("192.168.1.10"); err != nil {
		t.Fatalf("first AddAdmin failed: %v", err)
	}
	if err := table.AddAdmin("192.168.1.10"); !errors.Is(err, ErrDuplicateAdmin) {
		t.Fatalf("expected ErrDuplicateAdmin, got %v", err)
	}
	if len(table.AdminAddresses) != 1 {
		t.Fatalf("expected one admin address, got %d", len(table.AdminAddresses))
	}
}

func TestRemoveAdminAbsent(t *testing.T) {
	table := NewTable()
	table.RemoveAdmin("192.168.1.10") // must not panic or mutate
	if len(table.AdminAddresses) != 0 {
		t.Fatalf("expected empty admin set, got %v", table.AdminAddresses)
	}
}

func TestSplitAddressList(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{name: "commas", in: "10.0.0.1,10.0.0.2", want: []string{"10.0.0.1", "10.0.0.2"}},
		{name: "comma and space", in: "10.0.0.1, 10.0.0.2", want: []string{"10.0.0.1", "10.0.0.2"}},
		{name: "whitespace only", in: "10.0.0.1\t10.0.0.2\n10.0.0.3", want: []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}},
		{name: "empty entries dropped", in: ",, 10.0.0.1 ,", want: []string{"10.0.0.1"}},
		{name: "empty input", in: "  ", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitAddressList(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitAddressList(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAddScopesBatchAtomicity(t *testing.T) {
	table := NewTable()
	if err := table.AddScopes("10.0.0.1", "dept-1"); err != nil {
		t.Fatalf("seed AddScopes failed: %v", err)
	}

	err := table.AddScopes("10.0.0.1, 10.0.0.2", "dept-2")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if !reflect.DeepEqual(conflict.Addresses, []string{"10.0.0.1"}) {
		t.Fatalf("expected conflict on 10.0.0.1, got %v", conflict.Addresses)
	}

	// No partial application: the second address must remain unmapped,
	// the first must keep its original department.
	if _, ok := table.DepartmentByAddress["10.0.0.2"]; ok {
		t.Fatal("10.0.0.2 was mapped despite batch rejection")
	}
	if got := table.DepartmentByAddress["10.0.0.1"]; got != "dept-1" {
		t.Fatalf("10.0.0.1 remapped to %q, want dept-1", got)
	}
}

func TestAddScopesBatchSuccess(t *testing.T) {
	table := NewTable()
	if err := table.AddScopes("10.0.0.1 10.0.0.2,10.0.0.3", "dept-9"); err != nil {
		t.Fatalf("AddScopes failed: %v", err)
	}
	for _, addr := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if got := table.DepartmentByAddress[addr]; got != "dept-9" {
			t.Fatalf("address %s mapped to %q, want dept-9", addr, got)
		}
	}
}

func TestRemoveScopeAbsent(t *testing.T) {
	table := NewTable()
	table.RemoveScope("10.0.0.1") // no-op
	if len(table.DepartmentByAddress) != 0 {
		t.Fatalf("expected empty scope map, got %v", table.DepartmentByAddress)
	}
}
