package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage"
)

// GroupService is the group lifecycle manager: creation with the leader's
// implicit membership, lookup and search, the per-viewer group view, and
// deletion with its cascade.
type GroupService struct {
	store  storage.Store
	lists  *ListService
	claims *ClaimService
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, lists *ListService, claims *ClaimService) *GroupService {
	return &GroupService{store: store, lists: lists, claims: claims}
}

// Create creates a group led by leaderID showing their selected list.
// Names are unique case-insensitively; a taken name is ErrConflict.
// The leader's approved membership and the list link are created atomically
// with the group.
func (s *GroupService) Create(ctx context.Context, leaderID, name, listID string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidOperation
	}

	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidSelection
		}
		return nil, err
	}
	if list.OwnerID != leaderID {
		return nil, ErrInvalidSelection
	}

	group := &models.Group{Name: name, LeaderID: leaderID}
	if err := s.store.CreateGroup(ctx, group, listID); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "name", name, "leader_id", leaderID)
	return group, nil
}

// Resolve finds a group by ID or exact (case-insensitive) name, for the
// join form where users paste either.
func (s *GroupService) Resolve(ctx context.Context, identifier string) (*models.Group, error) {
	identifier = strings.TrimSpace(identifier)

	group, err := s.store.GetGroup(ctx, identifier)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	group, err = s.store.GetGroupByName(ctx, identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

// Search finds groups whose name contains q.
func (s *GroupService) Search(ctx context.Context, q string) ([]*models.Group, error) {
	return s.store.SearchGroups(ctx, strings.TrimSpace(q))
}

// MyGroups returns every group the user has any standing in.
func (s *GroupService) MyGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.GroupsForUser(ctx, userID)
}

// Delete removes the group and everything scoped to it. Leader only.
func (s *GroupService) Delete(ctx context.Context, groupID, leaderID string) (*models.CascadeResult, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if group.LeaderID != leaderID {
		return nil, ErrForbidden
	}

	res, err := s.store.DeleteGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	slog.Info("group deleted",
		"group_id", groupID,
		"memberships", len(res.Memberships),
		"links", len(res.ListLinks),
		"claims", len(res.Claims),
	)
	return res, nil
}

// View assembles the per-viewer group view: visible lists with their
// visibility-filtered items, approved members, and the claim projections.
// The viewer must be an approved member (the leader always is).
func (s *GroupService) View(ctx context.Context, groupID, viewerID string) (*models.GroupView, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := requireApprovedMember(ctx, s.store, groupID, viewerID); err != nil {
		return nil, err
	}

	view := &models.GroupView{
		Group:        group,
		ItemsForList: make(map[string][]*models.Item),
		ListForOwner: make(map[string]*models.GiftList),
	}

	links, err := s.store.LinksByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		list, err := s.store.GetList(ctx, link.ListID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		view.VisibleLists = append(view.VisibleLists, list)
		if _, ok := view.ListForOwner[list.OwnerID]; !ok {
			view.ListForOwner[list.OwnerID] = list
		}

		items, err := s.store.ItemsByList(ctx, list.ID)
		if err != nil {
			return nil, err
		}
		view.ItemsForList[list.ID] = visibleItems(items, list, viewerID, groupID)
	}

	memberships, err := s.store.MembershipsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	var memberIDs []string
	for _, mem := range memberships {
		if mem.State() == models.StateApproved {
			memberIDs = append(memberIDs, mem.UserID)
		}
	}
	users, err := s.store.UsersByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range memberIDs {
		if user, ok := users[id]; ok {
			view.Members = append(view.Members, user)
		}
	}

	view.ClaimedItemIDs, err = s.claims.ClaimedItemIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	view.MyClaimedItemIDs, err = s.claims.MyClaimedItemIDs(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}

	return view, nil
}
