// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (duplicate claim, membership, email, group name, ...).
	// Concurrent inserts race on the constraint; the loser gets this.
	ErrDuplicate = errors.New("already exists")
)

// Store defines the interface for persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Compound operations (group creation, surprise items, cascades) execute in
// a single transaction: they either fully apply or not at all.
type Store interface {
	// Users

	// CreateUser persists a new user. Returns ErrDuplicate if the email or
	// username is taken. Populates ID and CreatedAt when unset.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserByLogin retrieves a user by username or email.
	GetUserByLogin(ctx context.Context, identifier string) (*models.User, error)
	// UsersByIDs retrieves multiple users keyed by ID; absent IDs are omitted.
	UsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// Gift lists and items

	CreateList(ctx context.Context, list *models.GiftList) error
	GetList(ctx context.Context, id string) (*models.GiftList, error)
	ListsByOwner(ctx context.Context, ownerID string) ([]*models.GiftList, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id string) (*models.Item, error)
	ItemsByList(ctx context.Context, listID string) ([]*models.Item, error)
	// HideItemFromOwner sets the owner-hidden flag. Soft delete: the row stays.
	HideItemFromOwner(ctx context.Context, itemID string) error
	// CreateSurpriseItem inserts a group-scoped item together with the
	// auto-claim of its giver, atomically.
	CreateSurpriseItem(ctx context.Context, item *models.Item, claim *models.Claim) error

	// Groups

	// CreateGroup persists the group, the leader's approved membership, and
	// the link of the leader's selected list, in one transaction.
	// Returns ErrDuplicate if the name is taken (case-insensitive).
	CreateGroup(ctx context.Context, group *models.Group, selectedListID string) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	// GetGroupByName retrieves a group by exact name, case-insensitively.
	GetGroupByName(ctx context.Context, name string) (*models.Group, error)
	// SearchGroups finds groups whose name contains q, case-insensitively.
	SearchGroups(ctx context.Context, q string) ([]*models.Group, error)
	// GroupsForUser returns every group the user has any membership in.
	GroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// Memberships

	// CreateMembership inserts a membership row. Returns ErrDuplicate if the
	// (group, user) pair already has one.
	CreateMembership(ctx context.Context, m *models.Membership) error
	GetMembership(ctx context.Context, groupID, userID string) (*models.Membership, error)
	// UpdateMembership rewrites the state flags and selected list of a row.
	UpdateMembership(ctx context.Context, m *models.Membership) error
	MembershipsByGroup(ctx context.Context, groupID string) ([]*models.Membership, error)
	MembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error)

	// List-group links

	// LinkList makes a list visible in a group. Idempotent.
	LinkList(ctx context.Context, groupID, listID string) error
	ListLinked(ctx context.Context, groupID, listID string) (bool, error)
	LinksByGroup(ctx context.Context, groupID string) ([]models.ListGroup, error)
	GroupIDsForList(ctx context.Context, listID string) ([]string, error)

	// Claims

	// CreateClaim inserts a claim. The UNIQUE index on (item, group) is the
	// arbiter under concurrency: the second insert gets ErrDuplicate.
	CreateClaim(ctx context.Context, claim *models.Claim) error
	GetClaim(ctx context.Context, itemID, groupID string) (*models.Claim, error)
	// DeleteClaim removes the claim iff it exists and belongs to claimerID.
	// Reports whether a row was deleted; deleting nothing is not an error.
	DeleteClaim(ctx context.Context, itemID, groupID, claimerID string) (bool, error)
	ClaimsByGroup(ctx context.Context, groupID string) ([]*models.Claim, error)
	// ClaimsByClaimer returns the user's claims across all groups.
	ClaimsByClaimer(ctx context.Context, userID string) ([]*models.Claim, error)

	// Cascades. Each runs in a single transaction and reports the rows it
	// deleted.

	// RemoveMember deletes one user's membership in one group plus the
	// dependent rows: their list links, their claims inside the group, and
	// claimed surprise items scoped to this group on their lists.
	RemoveMember(ctx context.Context, groupID, userID string) (*models.CascadeResult, error)
	// DeleteGroup deletes the group with all memberships, links and claims
	// scoped to it. Items survive (they belong to lists).
	DeleteGroup(ctx context.Context, groupID string) (*models.CascadeResult, error)
	// DeleteUser deletes the account: groups they lead (full group cascade),
	// member removal everywhere else, their lists with items and claims,
	// stray claims they made, then the user row.
	DeleteUser(ctx context.Context, userID string) (*models.CascadeResult, error)

	// Close releases any resources held by the store.
	Close() error
}
