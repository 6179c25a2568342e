package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage"
)

// ListService owns gift lists and their items, including the visibility
// rules: what the list owner may see versus what fellow group members see.
type ListService struct {
	store storage.Store
}

// NewListService creates a new ListService with the given storage backend.
func NewListService(store storage.Store) *ListService {
	return &ListService{store: store}
}

// ItemInput carries the user-editable fields of an item.
type ItemInput struct {
	Name         string
	URL          string
	Notes        string
	HighPriority bool
}

// CreateList creates a new gift list owned by ownerID.
func (s *ListService) CreateList(ctx context.Context, ownerID, name string) (*models.GiftList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidOperation
	}

	list := &models.GiftList{OwnerID: ownerID, Name: name}
	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, err
	}

	slog.Info("list created", "list_id", list.ID, "owner_id", ownerID)
	return list, nil
}

// MyLists returns the lists owned by the user.
func (s *ListService) MyLists(ctx context.Context, ownerID string) ([]*models.GiftList, error) {
	return s.store.ListsByOwner(ctx, ownerID)
}

// AddItem adds an item to the requester's own list.
func (s *ListService) AddItem(ctx context.Context, listID, requesterID string, in ItemInput) (*models.Item, error) {
	list, err := s.getList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidOperation
	}

	item := &models.Item{
		ListID:       list.ID,
		Name:         strings.TrimSpace(in.Name),
		URL:          strings.TrimSpace(in.URL),
		Notes:        strings.TrimSpace(in.Notes),
		AddedByID:    requesterID,
		HighPriority: in.HighPriority,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	slog.Info("item added", "item_id", item.ID, "list_id", list.ID)
	return item, nil
}

// HideItem soft-deletes an item for its list owner. The item stays visible
// to everyone else; the owner never sees it again.
func (s *ListService) HideItem(ctx context.Context, listID, itemID, requesterID string) error {
	list, err := s.getList(ctx, listID)
	if err != nil {
		return err
	}
	if list.OwnerID != requesterID {
		return ErrForbidden
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if item.ListID != list.ID {
		return ErrNotFound
	}

	if err := s.store.HideItemFromOwner(ctx, itemID); err != nil {
		return err
	}

	slog.Info("item hidden from owner", "item_id", itemID, "list_id", listID)
	return nil
}

// AddSurpriseItem adds a gift idea to someone else's list within one group.
// The item is scoped to that group and permanently hidden from the list
// owner, and the giver's claim on it is created in the same transaction
// (whoever adds a surprise gift is assumed to be giving it).
func (s *ListService) AddSurpriseItem(ctx context.Context, listID, groupID, addedByID string, in ItemInput) (*models.Item, error) {
	list, err := s.getList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID == addedByID {
		// Cannot surprise yourself.
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidOperation
	}

	linked, err := s.store.ListLinked(ctx, groupID, listID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, ErrForbidden
	}

	// The giver must stand in the group like any other claimer.
	if err := requireApprovedMember(ctx, s.store, groupID, addedByID); err != nil {
		return nil, err
	}

	item := &models.Item{
		ListID:       list.ID,
		Name:         strings.TrimSpace(in.Name),
		URL:          strings.TrimSpace(in.URL),
		Notes:        strings.TrimSpace(in.Notes),
		AddedByID:    addedByID,
		HighPriority: in.HighPriority,
		OwnerHidden:  true,
		GroupID:      groupID,
	}
	claim := &models.Claim{GroupID: groupID, ClaimerID: addedByID}
	if err := s.store.CreateSurpriseItem(ctx, item, claim); err != nil {
		return nil, err
	}

	slog.Info("surprise item added",
		"item_id", item.ID,
		"list_id", list.ID,
		"group_id", groupID,
		"added_by", addedByID,
	)
	return item, nil
}

// ItemsVisibleTo filters a list's items for one viewer.
//
// The owner sees only items they added themselves that are not owner-hidden;
// surprise items never reach them. Everyone else sees unscoped items plus
// items scoped to groupCtx — never items scoped to a different group. With
// an empty groupCtx only unscoped items show.
func (s *ListService) ItemsVisibleTo(ctx context.Context, listID, viewerID, groupCtx string) ([]*models.Item, error) {
	list, err := s.getList(ctx, listID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ItemsByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	return visibleItems(items, list, viewerID, groupCtx), nil
}

// ListView resolves a list for a viewer: the owner gets their own filtered
// view; anyone else must share a group the list is visible in, and gets the
// member view for that context.
func (s *ListService) ListView(ctx context.Context, listID, viewerID, groupCtx string) (*models.GiftList, []*models.Item, error) {
	list, err := s.getList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}

	if list.OwnerID != viewerID {
		groupCtx, err = s.authorizeViewer(ctx, list, viewerID, groupCtx)
		if err != nil {
			return nil, nil, err
		}
	}

	items, err := s.store.ItemsByList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	return list, visibleItems(items, list, viewerID, groupCtx), nil
}

// authorizeViewer checks that a non-owner shares a group the list is linked
// into and returns the group context to filter with. When groupCtx is given
// it must be one of those groups; otherwise the single shared group is used,
// or no context at all when the list is shared more than once.
func (s *ListService) authorizeViewer(ctx context.Context, list *models.GiftList, viewerID, groupCtx string) (string, error) {
	groupIDs, err := s.store.GroupIDsForList(ctx, list.ID)
	if err != nil {
		return "", err
	}

	var shared []string
	for _, groupID := range groupIDs {
		if err := requireApprovedMember(ctx, s.store, groupID, viewerID); err == nil {
			shared = append(shared, groupID)
		}
	}
	if len(shared) == 0 {
		return "", ErrForbidden
	}

	if groupCtx != "" {
		for _, groupID := range shared {
			if groupID == groupCtx {
				return groupCtx, nil
			}
		}
		return "", ErrForbidden
	}
	if len(shared) == 1 {
		return shared[0], nil
	}
	return "", nil
}

func (s *ListService) getList(ctx context.Context, listID string) (*models.GiftList, error) {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return list, nil
}

// visibleItems applies the visibility rule to already-loaded items.
func visibleItems(items []*models.Item, list *models.GiftList, viewerID, groupCtx string) []*models.Item {
	visible := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if viewerID == list.OwnerID {
			if item.AddedByID == viewerID && !item.OwnerHidden {
				visible = append(visible, item)
			}
			continue
		}
		if item.GroupID == "" || item.GroupID == groupCtx {
			visible = append(visible, item)
		}
	}
	return visible
}

// requireApprovedMember fails with ErrForbidden unless userID has an
// approved membership in the group (the leader always has one).
func requireApprovedMember(ctx context.Context, store storage.Store, groupID, userID string) error {
	mem, err := store.GetMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if mem.State() != models.StateApproved {
		return ErrForbidden
	}
	return nil
}
