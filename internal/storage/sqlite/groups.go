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

// CreateGroup persists the group, the leader's approved membership and the
// link of the leader's selected list, in one transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group, selectedListID string) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, leader_id, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.LeaderID, group.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	// Leader is implicitly an approved member.
	mem := models.NewMembership(group.ID, group.LeaderID, selectedListID, models.StateApproved)
	mem.ID = uuid.New().String()
	mem.CreatedAt = group.CreatedAt
	_, err = tx.ExecContext(ctx,
		"INSERT INTO memberships (id, group_id, user_id, selected_list_id, approved, denied, invited, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		mem.ID, mem.GroupID, mem.UserID, mem.SelectedListID, mem.Approved, mem.Denied, mem.Invited, mem.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert leader membership: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO list_groups (group_id, list_id) VALUES (?, ?)",
		group.ID, selectedListID,
	)
	if err != nil {
		return fmt.Errorf("failed to link leader list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	return s.scanGroup(s.db.QueryRowContext(ctx,
		"SELECT id, name, leader_id, created_at FROM groups WHERE id = ?", id))
}

// GetGroupByName retrieves a group by exact name. The name column is
// NOCASE, so the match is case-insensitive.
func (s *SQLiteStore) GetGroupByName(ctx context.Context, name string) (*models.Group, error) {
	return s.scanGroup(s.db.QueryRowContext(ctx,
		"SELECT id, name, leader_id, created_at FROM groups WHERE name = ?", name))
}

func (s *SQLiteStore) scanGroup(row *sql.Row) (*models.Group, error) {
	group := &models.Group{}
	err := row.Scan(&group.ID, &group.Name, &group.LeaderID, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// SearchGroups finds groups whose name contains q, case-insensitively.
func (s *SQLiteStore) SearchGroups(ctx context.Context, q string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, leader_id, created_at FROM groups WHERE name LIKE ? ORDER BY name",
		"%"+q+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search groups: %w", err)
	}
	defer rows.Close()

	return collectGroups(rows)
}

// GroupsForUser returns every group the user has any membership row in,
// regardless of state.
func (s *SQLiteStore) GroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.leader_id, g.created_at
		FROM groups g
		JOIN memberships m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups for user: %w", err)
	}
	defer rows.Close()

	return collectGroups(rows)
}

func collectGroups(rows *sql.Rows) ([]*models.Group, error) {
	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.LeaderID, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return groups, nil
}

// LinkList makes a list visible in a group. Idempotent via INSERT OR IGNORE.
func (s *SQLiteStore) LinkList(ctx context.Context, groupID, listID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO list_groups (group_id, list_id) VALUES (?, ?)",
		groupID, listID,
	)
	if err != nil {
		return fmt.Errorf("failed to link list: %w", err)
	}
	return nil
}

// ListLinked reports whether a list is visible in a group.
func (s *SQLiteStore) ListLinked(ctx context.Context, groupID, listID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM list_groups WHERE group_id = ? AND list_id = ?",
		groupID, listID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check link: %w", err)
	}
	return true, nil
}

// LinksByGroup retrieves all list links of a group.
func (s *SQLiteStore) LinksByGroup(ctx context.Context, groupID string) ([]models.ListGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id, list_id FROM list_groups WHERE group_id = ?", groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}
	defer rows.Close()

	var links []models.ListGroup
	for rows.Next() {
		var link models.ListGroup
		if err := rows.Scan(&link.GroupID, &link.ListID); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}

	return links, nil
}

// GroupIDsForList returns the IDs of the groups a list is visible in.
func (s *SQLiteStore) GroupIDsForList(ctx context.Context, listID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id FROM list_groups WHERE list_id = ?", listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups for list: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group ids: %w", err)
	}

	return ids, nil
}
