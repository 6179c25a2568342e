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

const membershipColumns = "id, group_id, user_id, selected_list_id, approved, denied, invited, created_at"

// CreateMembership inserts a membership row. The UNIQUE(group_id, user_id)
// index rejects concurrent duplicates.
func (s *SQLiteStore) CreateMembership(ctx context.Context, m *models.Membership) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt == 0 {
		m.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO memberships ("+membershipColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		m.ID, m.GroupID, m.UserID, m.SelectedListID, m.Approved, m.Denied, m.Invited, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// GetMembership retrieves the membership row for a (group, user) pair.
func (s *SQLiteStore) GetMembership(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	m := &models.Membership{}
	err := scanMembership(s.db.QueryRowContext(ctx,
		"SELECT "+membershipColumns+" FROM memberships WHERE group_id = ? AND user_id = ?",
		groupID, userID), m)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

// UpdateMembership rewrites the state flags and selected list of a row.
func (s *SQLiteStore) UpdateMembership(ctx context.Context, m *models.Membership) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE memberships SET selected_list_id = ?, approved = ?, denied = ?, invited = ? WHERE id = ?",
		m.SelectedListID, m.Approved, m.Denied, m.Invited, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// MembershipsByGroup retrieves all membership rows of a group.
func (s *SQLiteStore) MembershipsByGroup(ctx context.Context, groupID string) ([]*models.Membership, error) {
	return s.collectMemberships(ctx,
		"SELECT "+membershipColumns+" FROM memberships WHERE group_id = ? ORDER BY created_at", groupID)
}

// MembershipsByUser retrieves all membership rows of a user.
func (s *SQLiteStore) MembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	return s.collectMemberships(ctx,
		"SELECT "+membershipColumns+" FROM memberships WHERE user_id = ? ORDER BY created_at", userID)
}

func (s *SQLiteStore) collectMemberships(ctx context.Context, query string, arg interface{}) ([]*models.Membership, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		m := &models.Membership{}
		if err := scanMembership(rows, m); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating memberships: %w", err)
	}

	return memberships, nil
}

func scanMembership(row scanner, m *models.Membership) error {
	return row.Scan(
		&m.ID, &m.GroupID, &m.UserID, &m.SelectedListID,
		&m.Approved, &m.Denied, &m.Invited, &m.CreatedAt,
	)
}
