package models

// Claim is one user's reservation of one item within one group.
//
// Unique per (item, group): inside a group an item has at most one claimer,
// but the same item may be claimed independently in different groups (an
// item shared into two groups can be gifted once per group context).
// A claim never references an item owned by its own claimer.
type Claim struct {
	// ID is the unique identifier for the claim (UUID format).
	ID string

	// ItemID references the claimed item.
	ItemID string

	// GroupID scopes the claim to one group.
	GroupID string

	// ClaimerID references the user who reserved the item.
	ClaimerID string

	// CreatedAt is the Unix timestamp when the claim was created.
	CreatedAt int64
}
