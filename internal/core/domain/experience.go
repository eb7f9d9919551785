package domain

import (
	"time"
)

// Experience is a bookable activity or event listed in the catalog.
// Latitude/Longitude are nullable: many listings only carry a free-text
// location string and never get geocoded.
type Experience struct {
	ID            string     `json:"id"`
	ProviderID    string     `json:"provider_id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ImageURL      string     `json:"image_url,omitempty"`
	Price         int        `json:"price"` // integer currency units
	Location      string     `json:"location"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	Duration      string     `json:"duration,omitempty"`
	Participants  int        `json:"participants"`
	Date          *time.Time `json:"date,omitempty"`
	Category      string     `json:"category"`
	NicheCategory string     `json:"niche_category,omitempty"`
	Trending      bool       `json:"trending"`
	Featured      bool       `json:"featured"`
	Romantic      bool       `json:"romantic"`
	Adventurous   bool       `json:"adventurous"`
	GroupActivity bool       `json:"group_activity"`
	CreatedAt     time.Time  `json:"created_at"`

	// DistanceKm is filled by a ranking pass, never persisted.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (e *Experience) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// ExperienceFilter narrows catalog listings.
type ExperienceFilter struct {
	Category      string
	NicheCategory string
	MinPrice      int
	MaxPrice      int
	Trending      *bool
	Featured      *bool
	Romantic      *bool
	Adventurous   *bool
	GroupActivity *bool
}

// Category groups experiences for browsing.
type Category struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Provider is a partner business that hosts experiences.
type Provider struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
