package domain

// Actor is the explicit capability token of the caller.
// It is built per request from a verified identity and the stored profile,
// never from ambient state.
type Actor struct {
	UserID string
	Name   string
	Email  string
	Root   bool
}

// IsAuthenticated returns true if the actor carries an identity
func (a Actor) IsAuthenticated() bool {
	return a.UserID != ""
}

// CanOverride returns true if the actor may bypass availability
func (a Actor) CanOverride() bool {
	return a.IsAuthenticated() && a.Root
}

// Anonymous is the actor of an unauthenticated call
var Anonymous = Actor{}
