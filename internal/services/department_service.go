package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mgavilanes/campline-be/internal/models"
)

// DepartmentServiceProvider defines the interface for department services.
type DepartmentServiceProvider interface {
	GetAllDepartments() ([]models.Department, error)
	GetDepartmentByID(id string) (models.Department, error)
	CreateDepartment(name string) (models.Department, error)
	DeleteDepartment(id string) error
}

// DepartmentService provides business logic for department management.
type DepartmentService struct {
	db *sql.DB
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(db *sql.DB) *DepartmentService {
	return &DepartmentService{db: db}
}

// GetAllDepartments retrieves every department, ordered by creation.
func (s *DepartmentService) GetAllDepartments() ([]models.Department, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM departments ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// GetDepartmentByID retrieves a single department by its ID.
func (s *DepartmentService) GetDepartmentByID(id string) (models.Department, error) {
	var d models.Department
	row := s.db.QueryRow("SELECT id, name, created_at FROM departments WHERE id = ?", id)
	if err := row.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return models.Department{}, fmt.Errorf("department with ID %s not found", id)
		}
		return models.Department{}, err
	}
	return d, nil
}

// CreateDepartment creates a new department. Names are unique so
// name-based lookup during import/export stays unambiguous.
func (s *DepartmentService) CreateDepartment(name string) (models.Department, error) {
	if name == "" {
		return models.Department{}, Validationf("department name must not be empty")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM departments WHERE name = ?", name).Scan(&count); err != nil {
		return models.Department{}, err
	}
	if count > 0 {
		return models.Department{}, Validationf("a department named %q already exists", name)
	}

	d := models.Department{ID: uuid.New().String(), Name: name}
	if _, err := s.db.Exec("INSERT INTO departments(id, name) VALUES(?, ?)", d.ID, d.Name); err != nil {
		return models.Department{}, err
	}
	return s.GetDepartmentByID(d.ID)
}

// DeleteDepartment removes a department. Deletion does not cascade to
// events: their department reference is set null by the schema and
// they degrade to "no department" on display.
func (s *DepartmentService) DeleteDepartment(id string) error {
	_, err := s.db.Exec("DELETE FROM departments WHERE id = ?", id)
	return err
}
