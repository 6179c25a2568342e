package models

// GiftList is a wish list owned by exactly one user (the recipient).
type GiftList struct {
	// ID is the unique identifier for the list (UUID format).
	ID string

	// OwnerID references the user who owns (and receives gifts from) the list.
	OwnerID string

	// Name is the display name of the list (e.g., "Birthday 2026").
	Name string

	// CreatedAt is the Unix timestamp when the list was created.
	CreatedAt int64
}

// ListGroup links a gift list into a group, making it visible there.
// Unique per (group, list). The link is created when the list owner's
// membership is approved and removed by the leave/kick/delete cascades;
// it is never retracted implicitly.
type ListGroup struct {
	GroupID string
	ListID  string
}
