package models

// Identity is the verified caller supplied by the identity provider
type Identity struct {
	ID    int
	Email string
	// CanModerate is resolved by the auth layer; services never inspect the email for it.
	CanModerate bool
}
