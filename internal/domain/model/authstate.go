package model

// AuthState is the process-wide authentication snapshot derived from the
// stored session. Loading is true only while the initial bootstrap read is
// in flight; IsAuthenticated is true iff User is non-nil.
type AuthState struct {
	IsAuthenticated bool
	User            *UserProfile
	Loading         bool
}
