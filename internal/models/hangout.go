package models

import "time"

// Hangout represents a social hangout event.
type Hangout struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	VenueLocation string    `json:"venue_location"`
	DateTime      time.Time `json:"date_time"`
	MaxGroupSize  int       `json:"max_group_size"`
	Description   string    `json:"description"`
	CreatorID     int       `json:"creator_id"`
	Participants  []User    `json:"participants"`
	CreatedAt     time.Time `json:"created_at"`
}

// HangoutDraft is the payload for creating a hangout.
type HangoutDraft struct {
	Title         string    `json:"title"`
	VenueLocation string    `json:"venue_location"`
	DateTime      time.Time `json:"date_time"`
	MaxGroupSize  int       `json:"max_group_size"`
	Description   string    `json:"description"`
}

// HangoutFilters narrows a hangout listing.
type HangoutFilters struct {
	Location string
	After    time.Time
	Before   time.Time
}

// MyHangouts splits the caller's hangouts into upcoming and past.
type MyHangouts struct {
	Upcoming []Hangout `json:"upcoming"`
	Past     []Hangout `json:"past"`
}
