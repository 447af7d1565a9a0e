package model

// CheckInInput is the payload for the checkIn mutation.
type CheckInInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
	Content   string  `json:"content,omitempty"`
}

// PlaceRef identifies the place a check-in resolved to.
type PlaceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CheckIn is a recorded visit as returned by the checkIn mutation.
type CheckIn struct {
	ID        string    `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp string    `json:"timestamp"`
	Content   string    `json:"content,omitempty"`
	Place     *PlaceRef `json:"place,omitempty"`
}
