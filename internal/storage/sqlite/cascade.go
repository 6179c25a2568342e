package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
)

// Cascades. Each public method opens one transaction, collects the dependent
// rows, deletes children before parents (foreign keys are on), and reports
// everything it removed. A failed step rolls the whole cascade back; nothing
// partially applies.

// RemoveMember deletes one user's standing in one group:
//   - claims on claimed surprise items scoped to this group on their lists,
//     then those items (unclaimed surprise items are left alone)
//   - claims the user made inside this group
//   - list links between their lists and this group
//   - the membership row
func (s *SQLiteStore) RemoveMember(ctx context.Context, groupID, userID string) (*models.CascadeResult, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res := &models.CascadeResult{}
	if err := removeMemberTx(ctx, tx, groupID, userID, res); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit member removal: %w", err)
	}
	return res, nil
}

// DeleteGroup deletes the group with every membership, list link and claim
// scoped to it. Items survive: they belong to lists, which outlive the group.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) (*models.CascadeResult, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res := &models.CascadeResult{}
	if err := deleteGroupTx(ctx, tx, groupID, res); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group deletion: %w", err)
	}
	return res, nil
}

// DeleteUser deletes the account and everything hanging off it:
// every group the user leads (full group cascade), member removal in every
// other group, their lists with all items and claims on those items, stray
// claims they made anywhere, and finally the user row.
func (s *SQLiteStore) DeleteUser(ctx context.Context, userID string) (*models.CascadeResult, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res := &models.CascadeResult{}

	ledGroups, err := collectIDs(ctx, tx, "SELECT id FROM groups WHERE leader_id = ?", userID)
	if err != nil {
		return nil, err
	}
	for _, groupID := range ledGroups {
		if err := deleteGroupTx(ctx, tx, groupID, res); err != nil {
			return nil, err
		}
	}

	memberGroups, err := collectIDs(ctx, tx, "SELECT group_id FROM memberships WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	for _, groupID := range memberGroups {
		if err := removeMemberTx(ctx, tx, groupID, userID, res); err != nil {
			return nil, err
		}
	}

	// The user's lists go away with their items and every claim on them,
	// from any group.
	listIDs, err := collectIDs(ctx, tx, "SELECT id FROM gift_lists WHERE owner_id = ?", userID)
	if err != nil {
		return nil, err
	}
	for _, listID := range listIDs {
		claimIDs, err := collectIDs(ctx, tx,
			"SELECT c.id FROM claims c JOIN items i ON c.item_id = i.id WHERE i.list_id = ?", listID)
		if err != nil {
			return nil, err
		}
		if err := deleteByIDs(ctx, tx, "claims", claimIDs); err != nil {
			return nil, err
		}
		res.Claims = append(res.Claims, claimIDs...)

		itemIDs, err := collectIDs(ctx, tx, "SELECT id FROM items WHERE list_id = ?", listID)
		if err != nil {
			return nil, err
		}
		if err := deleteByIDs(ctx, tx, "items", itemIDs); err != nil {
			return nil, err
		}
		res.Items = append(res.Items, itemIDs...)

		// Links from groups the user already left are not retracted
		// implicitly, so sweep them here before the list goes.
		if err := recordLinkDeletes(ctx, tx, res,
			"SELECT group_id, list_id FROM list_groups WHERE list_id = ?",
			"DELETE FROM list_groups WHERE list_id = ?", listID); err != nil {
			return nil, err
		}
	}
	if err := deleteByIDs(ctx, tx, "gift_lists", listIDs); err != nil {
		return nil, err
	}
	res.Lists = append(res.Lists, listIDs...)

	// Stray claims the user made on surviving items.
	strayClaims, err := collectIDs(ctx, tx, "SELECT id FROM claims WHERE claimer_id = ?", userID)
	if err != nil {
		return nil, err
	}
	if err := deleteByIDs(ctx, tx, "claims", strayClaims); err != nil {
		return nil, err
	}
	res.Claims = append(res.Claims, strayClaims...)

	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	res.Users = append(res.Users, userID)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit account deletion: %w", err)
	}
	return res, nil
}

func removeMemberTx(ctx context.Context, tx *sql.Tx, groupID, userID string, res *models.CascadeResult) error {
	// Surprise items scoped to this group on the member's lists with at
	// least one claim here. Children (claims) first.
	surpriseItems, err := collectIDs(ctx, tx, `
		SELECT i.id FROM items i
		JOIN gift_lists l ON i.list_id = l.id
		WHERE l.owner_id = ? AND i.group_id = ? AND i.owner_hidden = 1
		  AND EXISTS (SELECT 1 FROM claims c WHERE c.item_id = i.id AND c.group_id = ?)`,
		userID, groupID, groupID)
	if err != nil {
		return err
	}
	for _, itemID := range surpriseItems {
		claimIDs, err := collectIDs(ctx, tx,
			"SELECT id FROM claims WHERE item_id = ? AND group_id = ?", itemID, groupID)
		if err != nil {
			return err
		}
		if err := deleteByIDs(ctx, tx, "claims", claimIDs); err != nil {
			return err
		}
		res.Claims = append(res.Claims, claimIDs...)
	}
	if err := deleteByIDs(ctx, tx, "items", surpriseItems); err != nil {
		return err
	}
	res.Items = append(res.Items, surpriseItems...)

	// The member's reservations on others' items vanish.
	claimIDs, err := collectIDs(ctx, tx,
		"SELECT id FROM claims WHERE group_id = ? AND claimer_id = ?", groupID, userID)
	if err != nil {
		return err
	}
	if err := deleteByIDs(ctx, tx, "claims", claimIDs); err != nil {
		return err
	}
	res.Claims = append(res.Claims, claimIDs...)

	// Unlink the member's lists from this group.
	if err := recordLinkDeletes(ctx, tx, res, `
		SELECT lg.group_id, lg.list_id FROM list_groups lg
		JOIN gift_lists l ON lg.list_id = l.id
		WHERE lg.group_id = ? AND l.owner_id = ?`, `
		DELETE FROM list_groups
		WHERE group_id = ? AND list_id IN (SELECT id FROM gift_lists WHERE owner_id = ?)`,
		groupID, userID); err != nil {
		return err
	}

	memIDs, err := collectIDs(ctx, tx,
		"SELECT id FROM memberships WHERE group_id = ? AND user_id = ?", groupID, userID)
	if err != nil {
		return err
	}
	if err := deleteByIDs(ctx, tx, "memberships", memIDs); err != nil {
		return err
	}
	res.Memberships = append(res.Memberships, memIDs...)

	return nil
}

func deleteGroupTx(ctx context.Context, tx *sql.Tx, groupID string, res *models.CascadeResult) error {
	claimIDs, err := collectIDs(ctx, tx, "SELECT id FROM claims WHERE group_id = ?", groupID)
	if err != nil {
		return err
	}
	if err := deleteByIDs(ctx, tx, "claims", claimIDs); err != nil {
		return err
	}
	res.Claims = append(res.Claims, claimIDs...)

	if err := recordLinkDeletes(ctx, tx, res,
		"SELECT group_id, list_id FROM list_groups WHERE group_id = ?",
		"DELETE FROM list_groups WHERE group_id = ?", groupID); err != nil {
		return err
	}

	memIDs, err := collectIDs(ctx, tx, "SELECT id FROM memberships WHERE group_id = ?", groupID)
	if err != nil {
		return err
	}
	if err := deleteByIDs(ctx, tx, "memberships", memIDs); err != nil {
		return err
	}
	res.Memberships = append(res.Memberships, memIDs...)

	if _, err := tx.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	res.Groups = append(res.Groups, groupID)

	return nil
}

// recordLinkDeletes collects the (group, list) pairs matched by selectQuery,
// runs deleteQuery with the same args, and records the pairs.
func recordLinkDeletes(ctx context.Context, tx *sql.Tx, res *models.CascadeResult, selectQuery, deleteQuery string, args ...interface{}) error {
	rows, err := tx.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to collect list links: %w", err)
	}
	var links []models.ListGroup
	for rows.Next() {
		var link models.ListGroup
		if err := rows.Scan(&link.GroupID, &link.ListID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan list link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating list links: %w", err)
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, deleteQuery, args...); err != nil {
		return fmt.Errorf("failed to delete list links: %w", err)
	}
	res.ListLinks = append(res.ListLinks, links...)
	return nil
}

// collectIDs runs a single-column query and returns the IDs it yields.
func collectIDs(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to collect ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ids: %w", err)
	}
	return ids, nil
}

// deleteByIDs deletes the given rows from table. No-op on an empty slice.
func deleteByIDs(ctx context.Context, tx *sql.Tx, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := "DELETE FROM " + table + " WHERE id IN (?" + repeatPlaceholder(len(ids)-1) + ")"
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}
