package interchange

import (
	"testing"

	"github.com/mgavilanes/campline-be/internal/models"
)

func TestResolverTotalLookups(t *testing.T) {
	res := NewResolver(testDepartments(), testUsers())

	if got := res.DepartmentName("dept-2"); got != "Field Ops" {
		t.Fatalf("DepartmentName = %q, want Field Ops", got)
	}
	if got := res.DepartmentName("dept-missing"); got != "" {
		t.Fatalf("dangling department resolved to %q, want empty", got)
	}
	if got := res.DepartmentID("Marketing"); got != "dept-1" {
		t.Fatalf("DepartmentID = %q, want dept-1", got)
	}
	if got := res.DepartmentID("Sales"); got != "" {
		t.Fatalf("unknown name resolved to %q, want empty", got)
	}
	if got := res.UserName("user-1"); got != "Ana Ruiz" {
		t.Fatalf("UserName = %q, want Ana Ruiz", got)
	}
	if got := res.UserID("Ben Ito"); got != "user-2" {
		t.Fatalf("UserID = %q, want user-2", got)
	}
}

func TestResolverDuplicateNamesFirstMatch(t *testing.T) {
	depts := []models.Department{
		{ID: "dept-a", Name: "Outreach"},
		{ID: "dept-b", Name: "Outreach"},
	}
	res := NewResolver(depts, nil)
	if got := res.DepartmentID("Outreach"); got != "dept-a" {
		t.Fatalf("duplicate name resolved to %q, want first occurrence dept-a", got)
	}
}
