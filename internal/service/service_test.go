package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage/sqlite"
)

// testEnv wires every service against one temp sqlite store.
type testEnv struct {
	store       storage.Store
	lists       *ListService
	claims      *ClaimService
	groups      *GroupService
	memberships *MembershipService
	accounts    *AccountService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	lists := NewListService(store)
	claims := NewClaimService(store)
	return &testEnv{
		store:       store,
		lists:       lists,
		claims:      claims,
		groups:      NewGroupService(store, lists, claims),
		memberships: NewMembershipService(store),
		accounts:    NewAccountService(store, claims),
	}
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Email: name + "@example.com", Username: name, PasswordHash: "hash"}
	if err := e.store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return u
}

func (e *testEnv) list(t *testing.T, ownerID, name string) *models.GiftList {
	t.Helper()
	list, err := e.lists.CreateList(context.Background(), ownerID, name)
	if err != nil {
		t.Fatalf("failed to create list %s: %v", name, err)
	}
	return list
}

func (e *testEnv) group(t *testing.T, leaderID, name, listID string) *models.Group {
	t.Helper()
	group, err := e.groups.Create(context.Background(), leaderID, name, listID)
	if err != nil {
		t.Fatalf("failed to create group %s: %v", name, err)
	}
	return group
}

func (e *testEnv) item(t *testing.T, listID, ownerID, name string) *models.Item {
	t.Helper()
	item, err := e.lists.AddItem(context.Background(), listID, ownerID, ItemInput{Name: name})
	if err != nil {
		t.Fatalf("failed to add item %s: %v", name, err)
	}
	return item
}

// approveMember walks a user through request and approval so they end up an
// approved member with their list linked.
func (e *testEnv) approveMember(t *testing.T, group *models.Group, userID, listID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := e.memberships.Request(ctx, group.ID, userID, listID); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := e.memberships.Approve(ctx, group.ID, group.LeaderID, userID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
}
