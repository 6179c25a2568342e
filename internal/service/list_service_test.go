package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
)

func itemNames(items []*models.Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func containsName(items []*models.Item, name string) bool {
	for _, item := range items {
		if item.Name == name {
			return true
		}
	}
	return false
}

func TestAddItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	list := env.list(t, alice.ID, "Birthday")

	t.Run("owner adds an item", func(t *testing.T) {
		item, err := env.lists.AddItem(ctx, list.ID, alice.ID, ItemInput{
			Name: "  Socks  ", URL: "https://shop.test/socks", HighPriority: true,
		})
		if err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		if item.Name != "Socks" {
			t.Errorf("name = %q, want trimmed %q", item.Name, "Socks")
		}
		if !item.HighPriority {
			t.Error("high priority flag lost")
		}
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, err := env.lists.AddItem(ctx, list.ID, bob.ID, ItemInput{Name: "Trap"})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := env.lists.AddItem(ctx, list.ID, alice.ID, ItemInput{Name: "   "})
		if !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("error = %v, want ErrInvalidOperation", err)
		}
	})
}

func TestVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leader := env.user(t, "leader")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	leaderList := env.list(t, leader.ID, "Leader's list")
	bobList := env.list(t, bob.ID, "Bob's list")
	carolList := env.list(t, carol.ID, "Carol's list")
	group := env.group(t, leader.ID, "Cabin", leaderList.ID)
	env.approveMember(t, group, bob.ID, bobList.ID)
	env.approveMember(t, group, carol.ID, carolList.ID)

	socks := env.item(t, bobList.ID, bob.ID, "Socks")

	t.Run("owner and members see a plain item", func(t *testing.T) {
		for _, viewer := range []string{bob.ID, carol.ID} {
			items, err := env.lists.ItemsVisibleTo(ctx, bobList.ID, viewer, group.ID)
			if err != nil {
				t.Fatalf("ItemsVisibleTo failed: %v", err)
			}
			if !containsName(items, "Socks") {
				t.Errorf("viewer %s does not see Socks: %v", viewer, itemNames(items))
			}
		}
	})

	t.Run("hidden item disappears for the owner only", func(t *testing.T) {
		if err := env.lists.HideItem(ctx, bobList.ID, socks.ID, bob.ID); err != nil {
			t.Fatalf("HideItem failed: %v", err)
		}

		ownerItems, err := env.lists.ItemsVisibleTo(ctx, bobList.ID, bob.ID, group.ID)
		if err != nil {
			t.Fatalf("ItemsVisibleTo failed: %v", err)
		}
		if containsName(ownerItems, "Socks") {
			t.Error("owner still sees hidden item")
		}

		memberItems, err := env.lists.ItemsVisibleTo(ctx, bobList.ID, carol.ID, group.ID)
		if err != nil {
			t.Fatalf("ItemsVisibleTo failed: %v", err)
		}
		if !containsName(memberItems, "Socks") {
			t.Error("member lost sight of hidden item")
		}
	})

	t.Run("hide by non-owner forbidden", func(t *testing.T) {
		item := env.item(t, bobList.ID, bob.ID, "Book")
		if err := env.lists.HideItem(ctx, bobList.ID, item.ID, carol.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})
}

func TestSurpriseItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leader := env.user(t, "leader")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	dave := env.user(t, "dave")
	leaderList := env.list(t, leader.ID, "Leader's list")
	bobList := env.list(t, bob.ID, "Bob's list")
	carolList := env.list(t, carol.ID, "Carol's list")
	daveList := env.list(t, dave.ID, "Dave's list")

	cabin := env.group(t, leader.ID, "Cabin", leaderList.ID)
	office := env.group(t, dave.ID, "Office", daveList.ID)
	env.approveMember(t, cabin, bob.ID, bobList.ID)
	env.approveMember(t, cabin, carol.ID, carolList.ID)
	env.approveMember(t, office, bob.ID, bobList.ID)

	t.Run("cannot surprise yourself", func(t *testing.T) {
		_, err := env.lists.AddSurpriseItem(ctx, bobList.ID, cabin.ID, bob.ID, ItemInput{Name: "Oops"})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})

	t.Run("list must be linked into the group", func(t *testing.T) {
		_, err := env.lists.AddSurpriseItem(ctx, carolList.ID, office.ID, dave.ID, ItemInput{Name: "Oops"})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})

	surprise, err := env.lists.AddSurpriseItem(ctx, bobList.ID, cabin.ID, carol.ID, ItemInput{Name: "Secret"})
	if err != nil {
		t.Fatalf("AddSurpriseItem failed: %v", err)
	}

	t.Run("giver auto-claims the item", func(t *testing.T) {
		ids, err := env.claims.MyClaimedItemIDs(ctx, cabin.ID, carol.ID)
		if err != nil {
			t.Fatalf("MyClaimedItemIDs failed: %v", err)
		}
		if !ids[surprise.ID] {
			t.Error("giver has no claim on the surprise item")
		}
	})

	t.Run("owner never sees it", func(t *testing.T) {
		items, err := env.lists.ItemsVisibleTo(ctx, bobList.ID, bob.ID, cabin.ID)
		if err != nil {
			t.Fatalf("ItemsVisibleTo failed: %v", err)
		}
		if containsName(items, "Secret") {
			t.Error("owner sees the surprise item")
		}
	})

	t.Run("visible in the scoping group", func(t *testing.T) {
		items, err := env.lists.ItemsVisibleTo(ctx, bobList.ID, carol.ID, cabin.ID)
		if err != nil {
			t.Fatalf("ItemsVisibleTo failed: %v", err)
		}
		if !containsName(items, "Secret") {
			t.Error("member in the scoping group cannot see the surprise item")
		}
	})

	t.Run("invisible in other groups", func(t *testing.T) {
		items, err := env.lists.ItemsVisibleTo(ctx, bobList.ID, dave.ID, office.ID)
		if err != nil {
			t.Fatalf("ItemsVisibleTo failed: %v", err)
		}
		if containsName(items, "Secret") {
			t.Error("surprise item leaked into a different group")
		}
	})

	t.Run("cannot claim it from another group", func(t *testing.T) {
		_, err := env.claims.Claim(ctx, office.ID, surprise.ID, dave.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestListView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leader := env.user(t, "leader")
	bob := env.user(t, "bob")
	leaderList := env.list(t, leader.ID, "Leader's list")
	bobList := env.list(t, bob.ID, "Bob's list")
	group := env.group(t, leader.ID, "Cabin", leaderList.ID)
	env.approveMember(t, group, bob.ID, bobList.ID)
	env.item(t, bobList.ID, bob.ID, "Socks")

	t.Run("shared-group member may view", func(t *testing.T) {
		list, items, err := env.lists.ListView(ctx, bobList.ID, leader.ID, "")
		if err != nil {
			t.Fatalf("ListView failed: %v", err)
		}
		if list.ID != bobList.ID || !containsName(items, "Socks") {
			t.Errorf("unexpected view: %v", itemNames(items))
		}
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		stranger := env.user(t, "stranger")
		_, _, err := env.lists.ListView(ctx, bobList.ID, stranger.ID, "")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})

	t.Run("wrong group context forbidden", func(t *testing.T) {
		_, _, err := env.lists.ListView(ctx, bobList.ID, leader.ID, "other-group")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})
}
