package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/mgavilanes/campline-be/internal/interchange"
	"github.com/mgavilanes/campline-be/internal/models"
)

// ImportResult reports the outcome of a CSV import: how many events
// were created and the soft problems encountered per line.
type ImportResult struct {
	Created     int                      `json:"created"`
	Diagnostics []interchange.Diagnostic `json:"diagnostics,omitempty"`
}

// InterchangeServiceProvider defines the interface for CSV
// import/export of events.
type InterchangeServiceProvider interface {
	ExportCSV() (filename string, data []byte, err error)
	ImportCSV(text string) (ImportResult, error)
}

// InterchangeService orchestrates the tabular codec against the
// current entity sets and the event store.
type InterchangeService struct {
	events      EventServiceProvider
	departments DepartmentServiceProvider
	users       UserServiceProvider
}

// NewInterchangeService creates a new InterchangeService.
func NewInterchangeService(events EventServiceProvider, departments DepartmentServiceProvider, users UserServiceProvider) *InterchangeService {
	return &InterchangeService{events: events, departments: departments, users: users}
}

func (s *InterchangeService) currentSets() ([]models.Department, []models.User, error) {
	departments, err := s.departments.GetAllDepartments()
	if err != nil {
		return nil, nil, fmt.Errorf("load departments: %w", err)
	}
	users, err := s.users.GetAllUsers()
	if err != nil {
		return nil, nil, fmt.Errorf("load users: %w", err)
	}
	return departments, users, nil
}

// ExportCSV encodes every event as CSV and returns the dated export
// file name alongside the data.
func (s *InterchangeService) ExportCSV() (string, []byte, error) {
	events, err := s.events.GetAllEvents()
	if err != nil {
		return "", nil, fmt.Errorf("load events: %w", err)
	}
	departments, users, err := s.currentSets()
	if err != nil {
		return "", nil, err
	}

	text := interchange.Encode(events, departments, users)
	filename := fmt.Sprintf("events-%s.csv", time.Now().Format(models.DateLayout))
	return filename, []byte(text), nil
}

// ImportCSV decodes pasted or uploaded CSV text and inserts the
// resulting events in one transaction. Empty and header-only input
// are validation errors; malformed lines and soft data problems are
// reported as diagnostics without failing the batch.
func (s *InterchangeService) ImportCSV(text string) (ImportResult, error) {
	if strings.TrimSpace(text) == "" {
		return ImportResult{}, Validationf("import text is empty")
	}
	if !hasDataLines(text) {
		return ImportResult{}, Validationf("import text contains a header but no data rows")
	}

	departments, users, err := s.currentSets()
	if err != nil {
		return ImportResult{}, err
	}

	drafts, diags := interchange.Decode(text, departments, users)
	result := ImportResult{Diagnostics: diags}
	if len(drafts) == 0 {
		return result, nil
	}

	created, err := s.events.BulkCreateEvents(drafts)
	if err != nil {
		return ImportResult{}, err
	}
	result.Created = created
	return result, nil
}

// hasDataLines reports whether any non-blank line follows the header.
func hasDataLines(text string) bool {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}
