package models

import "time"

// Department groups events under one organizational unit. Names are
// unique so name-based lookup during CSV interchange is unambiguous.
type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
