package model

// Session is the persisted unit of trust: a bearer token pair plus the user
// snapshot it was issued for. The login and signup payloads have exactly this
// shape, and the record is persisted verbatim.
//
// A session is either entirely absent (unauthenticated) or fully populated;
// partial records must never be persisted.
type Session struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         UserProfile `json:"user"`
}

// Valid reports whether the session is fully populated: both tokens present
// and a user identity attached.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && s.RefreshToken != "" && s.User.ID != ""
}
