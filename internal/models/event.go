package models

import "time"

// DateLayout is the canonical calendar date format used for event
// dates everywhere in the system, including CSV interchange.
const DateLayout = "2006-01-02"

// Urgency is the closed set of urgency levels an event can carry.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Label returns the display label for the urgency level. Unknown
// values label as Medium so a level is always presentable.
func (u Urgency) Label() string {
	switch u {
	case UrgencyLow:
		return "Low"
	case UrgencyHigh:
		return "High"
	default:
		return "Medium"
	}
}

// ParseUrgency maps free-form input (level value or display label,
// any case) to a known urgency level. Anything unrecognized falls
// back to Medium rather than failing, so an event's urgency is never
// left undefined.
func ParseUrgency(s string) Urgency {
	switch s {
	case "low", "Low", "LOW":
		return UrgencyLow
	case "high", "High", "HIGH":
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// Event represents a single calendar entry for a campaign.
type Event struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Date        string  `json:"date"` // yyyy-MM-dd; imported rows may carry their original text through
	Urgency     Urgency `json:"urgency"`
	Description string  `json:"description,omitempty"`
	// Soft references; a deleted department or user leaves them null.
	DepartmentID *string   `json:"departmentId,omitempty"`
	AssigneeID   *string   `json:"assigneeId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
