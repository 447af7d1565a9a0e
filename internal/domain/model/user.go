package model

// UserProfile is a denormalized snapshot of the authenticated identity,
// returned by the login/signup payloads and cached alongside the token pair
// for offline display.
type UserProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
}
