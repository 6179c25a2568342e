package models

// Item is a single gift idea on a gift list.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// ListID references the gift list the item belongs to.
	ListID string

	// Name is the display name of the item.
	Name string

	// URL optionally links to the item (shop page etc.).
	URL string

	// Notes optionally carries free-form details (size, color, ...).
	Notes string

	// AddedByID references the user who created the item. For surprise
	// items this is a third party, never the list owner.
	AddedByID string

	// HighPriority marks an item the recipient really wants.
	HighPriority bool

	// OwnerHidden is the soft-delete flag: once true, the list owner never
	// sees the item again, but other group members still do. Set when the
	// owner "removes" an item and always true for surprise items.
	OwnerHidden bool

	// GroupID optionally scopes the item to a single group.
	//
	// Empty: the item is visible wherever its list is visible.
	// Set: the item exists only within that group's context — a surprise
	// gift added by a third party, invisible in every other group and to
	// the list owner.
	GroupID string

	// CreatedAt is the Unix timestamp when the item was created.
	CreatedAt int64
}

// Surprise reports whether the item is scoped to a single group.
func (i *Item) Surprise() bool {
	return i.GroupID != ""
}
