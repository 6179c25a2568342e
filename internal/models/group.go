package models

// Group is a circle of people exchanging gifts.
//
// Every group has exactly one leader (its creator), who is implicitly an
// approved member and the only administrator. Group names are unique
// case-insensitively.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Cabin", "Office").
	Name string

	// LeaderID references the user who created the group.
	LeaderID string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
