package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mgavilanes/campline-be/internal/models"
	"github.com/mgavilanes/campline-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// AnnouncementServiceProvider defines the interface for announcement services.
type AnnouncementServiceProvider interface {
	GetAllAnnouncements() ([]models.Announcement, error)
	GetAnnouncementByID(id string) (models.Announcement, error)
	CreateAnnouncement(title, body string) (models.Announcement, error)
	MarkRead(announcementID, viewerID string) error
}

// AnnouncementService provides business logic for broadcast
// announcements and their per-viewer acknowledgment state.
type AnnouncementService struct {
	db  *sql.DB
	hub *websocket.Hub
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(db *sql.DB, hub *websocket.Hub) *AnnouncementService {
	return &AnnouncementService{db: db, hub: hub}
}

// GetAllAnnouncements retrieves every announcement, newest first,
// with its acknowledgment set.
func (s *AnnouncementService) GetAllAnnouncements() ([]models.Announcement, error) {
	rows, err := s.db.Query("SELECT id, title, body, created_at FROM announcements ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range announcements {
		readBy, err := s.readSet(announcements[i].ID)
		if err != nil {
			return nil, err
		}
		announcements[i].ReadBy = readBy
	}
	return announcements, nil
}

// GetAnnouncementByID retrieves a single announcement with its
// acknowledgment set.
func (s *AnnouncementService) GetAnnouncementByID(id string) (models.Announcement, error) {
	var a models.Announcement
	row := s.db.QueryRow("SELECT id, title, body, created_at FROM announcements WHERE id = ?", id)
	if err := row.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return models.Announcement{}, fmt.Errorf("announcement with ID %s not found", id)
		}
		return models.Announcement{}, err
	}
	readBy, err := s.readSet(a.ID)
	if err != nil {
		return models.Announcement{}, err
	}
	a.ReadBy = readBy
	return a, nil
}

func (s *AnnouncementService) readSet(announcementID string) ([]string, error) {
	rows, err := s.db.Query("SELECT user_id FROM announcement_reads WHERE announcement_id = ?", announcementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readBy []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		readBy = append(readBy, id)
	}
	return readBy, rows.Err()
}

// CreateAnnouncement posts a new announcement and pushes it to every
// connected client.
func (s *AnnouncementService) CreateAnnouncement(title, body string) (models.Announcement, error) {
	if title == "" {
		return models.Announcement{}, Validationf("title must not be empty")
	}

	a := models.Announcement{
		ID:        uuid.New().String(),
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec("INSERT INTO announcements(id, title, body, created_at) VALUES(?, ?, ?, ?)",
		a.ID, a.Title, a.Body, a.CreatedAt)
	if err != nil {
		return models.Announcement{}, err
	}

	if s.hub != nil {
		if msg, err := websocket.NewAnnouncementMessage(a); err == nil {
			s.hub.Broadcast <- msg
		} else {
			log.Error().Err(err).Str("announcement_id", a.ID).Msg("Failed to encode announcement push")
		}
	}
	return a, nil
}

// MarkRead records a viewer's acknowledgment. The write is a set-add
// (INSERT OR IGNORE on the composite key) so concurrent viewers never
// lose each other's acknowledgments, and repeated calls are no-ops.
// An empty viewer ID is ignored.
func (s *AnnouncementService) MarkRead(announcementID, viewerID string) error {
	if viewerID == "" {
		return nil
	}
	_, err := s.db.Exec("INSERT OR IGNORE INTO announcement_reads(announcement_id, user_id) VALUES(?, ?)",
		announcementID, viewerID)
	return err
}
