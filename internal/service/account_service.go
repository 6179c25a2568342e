package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage"
)

// AccountService serves the account dashboard and runs account deletion.
type AccountService struct {
	store  storage.Store
	claims *ClaimService
}

// NewAccountService creates a new AccountService with the given storage
// backend.
func NewAccountService(store storage.Store, claims *ClaimService) *AccountService {
	return &AccountService{store: store, claims: claims}
}

// Dashboard assembles the account landing view: the user's lists, their
// groups, which list they show in each group, and every gift they are
// giving across all groups.
func (s *AccountService) Dashboard(ctx context.Context, userID string) (*models.Dashboard, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dash := &models.Dashboard{
		User:         user,
		ListForGroup: make(map[string]*models.GiftList),
	}

	dash.Lists, err = s.store.ListsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	dash.Groups, err = s.store.GroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.store.MembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, mem := range memberships {
		if mem.SelectedListID == "" {
			continue
		}
		list, err := s.store.GetList(ctx, mem.SelectedListID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		dash.ListForGroup[mem.GroupID] = list
	}

	dash.Giving, err = s.claims.Giving(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dash, nil
}

// DeleteAccount removes the user and everything hanging off them: led
// groups in full, memberships elsewhere, owned lists with items and claims,
// stray claims, then the account itself — one atomic cascade.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) (*models.CascadeResult, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res, err := s.store.DeleteUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	slog.Info("account deleted",
		"user_id", userID,
		"groups", len(res.Groups),
		"lists", len(res.Lists),
		"items", len(res.Items),
		"claims", len(res.Claims),
		"memberships", len(res.Memberships),
	)
	return res, nil
}
