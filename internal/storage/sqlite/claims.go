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

const claimColumns = "id, item_id, group_id, claimer_id, created_at"

// CreateClaim inserts a claim. The UNIQUE(item_id, group_id) index is the
// arbiter for concurrent claims: the second insert gets ErrDuplicate, never
// a lost update.
func (s *SQLiteStore) CreateClaim(ctx context.Context, claim *models.Claim) error {
	prepareClaim(claim)

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO claims ("+claimColumns+") VALUES (?, ?, ?, ?, ?)",
		claim.ID, claim.ItemID, claim.GroupID, claim.ClaimerID, claim.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return nil
}

// GetClaim retrieves the claim on an item within a group, if any.
func (s *SQLiteStore) GetClaim(ctx context.Context, itemID, groupID string) (*models.Claim, error) {
	claim := &models.Claim{}
	err := scanClaim(s.db.QueryRowContext(ctx,
		"SELECT "+claimColumns+" FROM claims WHERE item_id = ? AND group_id = ?",
		itemID, groupID), claim)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return claim, nil
}

// DeleteClaim removes the claim iff it exists and belongs to claimerID.
// Reports whether a row was deleted.
func (s *SQLiteStore) DeleteClaim(ctx context.Context, itemID, groupID, claimerID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM claims WHERE item_id = ? AND group_id = ? AND claimer_id = ?",
		itemID, groupID, claimerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete claim: %w", err)
	}
	return n > 0, nil
}

// ClaimsByGroup retrieves every claim scoped to a group.
func (s *SQLiteStore) ClaimsByGroup(ctx context.Context, groupID string) ([]*models.Claim, error) {
	return s.collectClaims(ctx,
		"SELECT "+claimColumns+" FROM claims WHERE group_id = ? ORDER BY created_at", groupID)
}

// ClaimsByClaimer retrieves a user's claims across all groups, for the
// "gifts I'm giving" projection.
func (s *SQLiteStore) ClaimsByClaimer(ctx context.Context, userID string) ([]*models.Claim, error) {
	return s.collectClaims(ctx,
		"SELECT "+claimColumns+" FROM claims WHERE claimer_id = ? ORDER BY created_at", userID)
}

func (s *SQLiteStore) collectClaims(ctx context.Context, query string, arg interface{}) ([]*models.Claim, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		claim := &models.Claim{}
		if err := scanClaim(rows, claim); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating claims: %w", err)
	}

	return claims, nil
}

func prepareClaim(claim *models.Claim) {
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	if claim.CreatedAt == 0 {
		claim.CreatedAt = time.Now().Unix()
	}
}

func scanClaim(row scanner, claim *models.Claim) error {
	return row.Scan(&claim.ID, &claim.ItemID, &claim.GroupID, &claim.ClaimerID, &claim.CreatedAt)
}
