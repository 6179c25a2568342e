package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage"
)

// ClaimService is the visibility and claim engine: it decides who may
// reserve which item in which group, and computes the claim projections the
// presentation layer renders.
//
// Claims are scoped per group: an item shared into two groups can be
// claimed once in each. Within one group the UNIQUE(item, group) index in
// the store arbitrates concurrent claims; the loser sees ErrConflict, never
// a lost update.
type ClaimService struct {
	store storage.Store
}

// NewClaimService creates a new ClaimService with the given storage backend.
func NewClaimService(store storage.Store) *ClaimService {
	return &ClaimService{store: store}
}

// ClaimResult reports what a claim or unclaim did.
type ClaimResult struct {
	Outcome Outcome
	Claim   *models.Claim
}

// Claim reserves an item for claimerID within a group.
//
// Fails NotFound when the item, its list, the group, or the item's
// visibility in this group is absent (scoped to another group, or list not
// linked here). Fails Forbidden when the claimer owns the list or is not an
// approved member. When the item is already claimed in this group the
// stored effect is nothing either way, but the outcome distinguishes
// "already claimed by you" (success) from a hard ErrConflict.
func (s *ClaimService) Claim(ctx context.Context, groupID, itemID, claimerID string) (*ClaimResult, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	list, err := s.store.GetList(ctx, item.ListID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if list.OwnerID == claimerID {
		// Cannot claim your own gift.
		return nil, ErrForbidden
	}
	if err := requireApprovedMember(ctx, s.store, groupID, claimerID); err != nil {
		return nil, err
	}

	// The item must actually be visible in this group: its list linked
	// here, and its scoping group (if any) this one.
	if item.Surprise() && item.GroupID != groupID {
		return nil, ErrNotFound
	}
	linked, err := s.store.ListLinked(ctx, groupID, item.ListID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, ErrNotFound
	}

	claim := &models.Claim{ItemID: itemID, GroupID: groupID, ClaimerID: claimerID}
	if err := s.store.CreateClaim(ctx, claim); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return s.resolveExisting(ctx, groupID, itemID, claimerID)
		}
		return nil, err
	}

	slog.Info("item claimed", "item_id", itemID, "group_id", groupID, "claimer_id", claimerID)
	return &ClaimResult{Outcome: OutcomeClaimed, Claim: claim}, nil
}

// resolveExisting maps a duplicate-claim insert to its user-facing meaning.
func (s *ClaimService) resolveExisting(ctx context.Context, groupID, itemID, claimerID string) (*ClaimResult, error) {
	existing, err := s.store.GetClaim(ctx, itemID, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The competing claim vanished between insert and read;
			// from the caller's view the item is contended either way.
			return nil, ErrConflict
		}
		return nil, err
	}
	if existing.ClaimerID == claimerID {
		return &ClaimResult{Outcome: OutcomeAlreadyYours, Claim: existing}, nil
	}
	return nil, ErrConflict
}

// Unclaim releases the caller's claim on an item within a group. Removing a
// claim that does not exist (or belongs to someone else) is a successful
// no-op reported as "nothing to remove".
func (s *ClaimService) Unclaim(ctx context.Context, groupID, itemID, claimerID string) (*ClaimResult, error) {
	deleted, err := s.store.DeleteClaim(ctx, itemID, groupID, claimerID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return &ClaimResult{Outcome: OutcomeNothingToRemove}, nil
	}

	slog.Info("item unclaimed", "item_id", itemID, "group_id", groupID, "claimer_id", claimerID)
	return &ClaimResult{Outcome: OutcomeUnclaimed}, nil
}

// ClaimedItemIDs returns every item claimed by anyone in the group.
func (s *ClaimService) ClaimedItemIDs(ctx context.Context, groupID string) (map[string]bool, error) {
	claims, err := s.store.ClaimsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(claims))
	for _, claim := range claims {
		ids[claim.ItemID] = true
	}
	return ids, nil
}

// MyClaimedItemIDs returns the items the viewer has claimed in the group.
// Drives the unclaim affordance.
func (s *ClaimService) MyClaimedItemIDs(ctx context.Context, groupID, userID string) (map[string]bool, error) {
	claims, err := s.store.ClaimsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool)
	for _, claim := range claims {
		if claim.ClaimerID == userID {
			ids[claim.ItemID] = true
		}
	}
	return ids, nil
}

// Giving returns the viewer's claims across all groups with their items —
// the "gifts I'm giving" dashboard projection.
func (s *ClaimService) Giving(ctx context.Context, userID string) ([]*models.ClaimedGift, error) {
	claims, err := s.store.ClaimsByClaimer(ctx, userID)
	if err != nil {
		return nil, err
	}

	gifts := make([]*models.ClaimedGift, 0, len(claims))
	for _, claim := range claims {
		item, err := s.store.GetItem(ctx, claim.ItemID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		gifts = append(gifts, &models.ClaimedGift{Claim: claim, Item: item})
	}
	return gifts, nil
}
