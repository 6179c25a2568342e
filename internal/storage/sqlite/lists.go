package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage"
)

// CreateList inserts a new gift list.
func (s *SQLiteStore) CreateList(ctx context.Context, list *models.GiftList) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	if list.CreatedAt == 0 {
		list.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO gift_lists (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)",
		list.ID, list.OwnerID, list.Name, list.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}

	return nil
}

// GetList retrieves a gift list by ID.
func (s *SQLiteStore) GetList(ctx context.Context, id string) (*models.GiftList, error) {
	list := &models.GiftList{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, name, created_at FROM gift_lists WHERE id = ?", id,
	).Scan(&list.ID, &list.OwnerID, &list.Name, &list.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return list, nil
}

// ListsByOwner retrieves all lists owned by a user, oldest first.
func (s *SQLiteStore) ListsByOwner(ctx context.Context, ownerID string) ([]*models.GiftList, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, name, created_at FROM gift_lists WHERE owner_id = ? ORDER BY created_at",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.GiftList
	for rows.Next() {
		list := &models.GiftList{}
		if err := rows.Scan(&list.ID, &list.OwnerID, &list.Name, &list.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lists: %w", err)
	}

	return lists, nil
}

const itemColumns = "id, list_id, name, url, notes, added_by_id, high_priority, owner_hidden, group_id, created_at"

// CreateItem inserts a new item.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	prepareItem(item)

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO items ("+itemColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		itemArgs(item)...,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item := &models.Item{}
	err := scanItem(s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id), item)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ItemsByList retrieves every item on a list, unfiltered. Visibility
// filtering is the service's job.
func (s *SQLiteStore) ItemsByList(ctx context.Context, listID string) ([]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE list_id = ? ORDER BY created_at", listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := scanItem(rows, item); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// HideItemFromOwner flips the owner-hidden flag. The row stays so other
// members keep seeing the item.
func (s *SQLiteStore) HideItemFromOwner(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE items SET owner_hidden = 1 WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to hide item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to hide item: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateSurpriseItem inserts a group-scoped item and the giver's auto-claim
// in one transaction. Either both rows land or neither does.
func (s *SQLiteStore) CreateSurpriseItem(ctx context.Context, item *models.Item, claim *models.Claim) error {
	prepareItem(item)
	prepareClaim(claim)
	claim.ItemID = item.ID

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO items ("+itemColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		itemArgs(item)...,
	)
	if err != nil {
		return fmt.Errorf("failed to insert surprise item: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO claims (id, item_id, group_id, claimer_id, created_at) VALUES (?, ?, ?, ?, ?)",
		claim.ID, claim.ItemID, claim.GroupID, claim.ClaimerID, claim.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert surprise claim: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func prepareItem(item *models.Item) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}
}

func itemArgs(item *models.Item) []interface{} {
	return []interface{}{
		item.ID, item.ListID, item.Name, item.URL, item.Notes,
		item.AddedByID, item.HighPriority, item.OwnerHidden, item.GroupID, item.CreatedAt,
	}
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner, item *models.Item) error {
	return row.Scan(
		&item.ID, &item.ListID, &item.Name, &item.URL, &item.Notes,
		&item.AddedByID, &item.HighPriority, &item.OwnerHidden, &item.GroupID, &item.CreatedAt,
	)
}
