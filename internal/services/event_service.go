package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mgavilanes/campline-be/internal/interchange"
	"github.com/mgavilanes/campline-be/internal/models"
	"github.com/mgavilanes/campline-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	GetAllEvents() ([]models.Event, error)
	GetEventsForDepartment(departmentID string) ([]models.Event, error)
	GetEventByID(id string) (models.Event, error)
	CreateEvent(event models.Event) (models.Event, error)
	UpdateEvent(id string, event models.Event) (models.Event, error)
	DeleteEvent(id string) error
	DeleteAllEvents() error
	BulkCreateEvents(drafts []interchange.Draft) (int, error)
}

// EventService provides business logic for calendar event management.
// Changes to events with a department are pushed to that department's
// websocket feed.
type EventService struct {
	db  *sql.DB
	hub *websocket.Hub
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, hub *websocket.Hub) *EventService {
	return &EventService{db: db, hub: hub}
}

// notify pushes an event change to its department's feed. Events
// without a department have no feed to notify.
func (s *EventService) notify(action string, ev models.Event) {
	if s.hub == nil || ev.DepartmentID == nil {
		return
	}
	msg, err := websocket.NewEventMessage(action, ev)
	if err != nil {
		log.Error().Err(err).Str("event_id", ev.ID).Msg("Failed to encode event push")
		return
	}
	s.hub.BroadcastTo(*ev.DepartmentID, msg)
}

const eventColumns = "id, title, date, urgency, description, department_id, assignee_id, created_at"

func scanEvent(row interface{ Scan(...any) error }) (models.Event, error) {
	var ev models.Event
	var deptID, assigneeID sql.NullString
	var urgency string
	err := row.Scan(&ev.ID, &ev.Title, &ev.Date, &urgency, &ev.Description, &deptID, &assigneeID, &ev.CreatedAt)
	if err != nil {
		return models.Event{}, err
	}
	ev.Urgency = models.ParseUrgency(urgency)
	if deptID.Valid {
		ev.DepartmentID = &deptID.String
	}
	if assigneeID.Valid {
		ev.AssigneeID = &assigneeID.String
	}
	return ev, nil
}

func collectEvents(rows *sql.Rows) ([]models.Event, error) {
	defer rows.Close()
	var events []models.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// GetAllEvents retrieves every event ordered by date.
func (s *EventService) GetAllEvents() ([]models.Event, error) {
	rows, err := s.db.Query("SELECT " + eventColumns + " FROM events ORDER BY date, created_at")
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// GetEventsForDepartment retrieves the events of one department,
// ordered by date.
func (s *EventService) GetEventsForDepartment(departmentID string) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT "+eventColumns+" FROM events WHERE department_id = ? ORDER BY date, created_at", departmentID)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// GetEventByID retrieves a single event by its ID.
func (s *EventService) GetEventByID(id string) (models.Event, error) {
	row := s.db.QueryRow("SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	ev, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Event{}, fmt.Errorf("event with ID %s not found", id)
		}
		return models.Event{}, err
	}
	return ev, nil
}

func validateEvent(event models.Event) error {
	if event.Title == "" {
		return Validationf("title must not be empty")
	}
	if _, err := time.Parse(models.DateLayout, event.Date); err != nil {
		return Validationf("date must be in %s form", models.DateLayout)
	}
	return nil
}

// CreateEvent creates a new event. Title and a well-formed date are
// required; the urgency is coerced to a known level.
func (s *EventService) CreateEvent(event models.Event) (models.Event, error) {
	if err := validateEvent(event); err != nil {
		return models.Event{}, err
	}

	event.ID = uuid.New().String()
	event.Urgency = models.ParseUrgency(string(event.Urgency))

	_, err := s.db.Exec("INSERT INTO events(id, title, date, urgency, description, department_id, assignee_id) VALUES(?, ?, ?, ?, ?, ?, ?)",
		event.ID, event.Title, event.Date, string(event.Urgency), event.Description, event.DepartmentID, event.AssigneeID)
	if err != nil {
		return models.Event{}, err
	}
	created, err := s.GetEventByID(event.ID)
	if err != nil {
		return models.Event{}, err
	}
	s.notify("event.created", created)
	return created, nil
}

// UpdateEvent replaces an event's mutable fields.
func (s *EventService) UpdateEvent(id string, event models.Event) (models.Event, error) {
	if err := validateEvent(event); err != nil {
		return models.Event{}, err
	}
	event.Urgency = models.ParseUrgency(string(event.Urgency))

	_, err := s.db.Exec("UPDATE events SET title = ?, date = ?, urgency = ?, description = ?, department_id = ?, assignee_id = ? WHERE id = ?",
		event.Title, event.Date, string(event.Urgency), event.Description, event.DepartmentID, event.AssigneeID, id)
	if err != nil {
		return models.Event{}, err
	}
	updated, err := s.GetEventByID(id)
	if err != nil {
		return models.Event{}, err
	}
	s.notify("event.updated", updated)
	return updated, nil
}

// DeleteEvent removes a single event. Deleting an absent ID is a
// no-op.
func (s *EventService) DeleteEvent(id string) error {
	ev, lookupErr := s.GetEventByID(id)
	if _, err := s.db.Exec("DELETE FROM events WHERE id = ?", id); err != nil {
		return err
	}
	if lookupErr == nil {
		s.notify("event.deleted", ev)
	}
	return nil
}

// DeleteAllEvents removes every event.
func (s *EventService) DeleteAllEvents() error {
	_, err := s.db.Exec("DELETE FROM events")
	return err
}

// BulkCreateEvents inserts decoded import drafts in one transaction.
// Dates are stored as decoded, parseable or not; urgency was already
// coerced during decode. Returns the number of events created.
func (s *EventService) BulkCreateEvents(drafts []interchange.Draft) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO events(id, title, date, urgency, description, department_id, assignee_id) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, d := range drafts {
		_, err := stmt.Exec(uuid.New().String(), d.Title, d.Date, string(d.Urgency), d.Description, d.DepartmentID, d.AssigneeID)
		if err != nil {
			return 0, fmt.Errorf("insert imported event %q: %w", d.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(drafts), nil
}
