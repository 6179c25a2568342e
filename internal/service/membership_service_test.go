package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
)

func TestRequestFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leader := env.user(t, "leader")
	bob := env.user(t, "bob")
	leaderList := env.list(t, leader.ID, "Leader's list")
	bobList := env.list(t, bob.ID, "Bob's list")
	group := env.group(t, leader.ID, "Cabin", leaderList.ID)

	t.Run("first request goes pending", func(t *testing.T) {
		res, err := env.memberships.Request(ctx, group.ID, bob.ID, bobList.ID)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if res.Outcome != OutcomeRequested {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeRequested)
		}
		if res.Membership.State() != models.StatePendingRequest {
			t.Errorf("state = %v, want pending request", res.Membership.State())
		}
	})

	t.Run("re-request reports already pending", func(t *testing.T) {
		res, err := env.memberships.Request(ctx, group.ID, bob.ID, bobList.ID)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if res.Outcome != OutcomeAlreadyPending {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeAlreadyPending)
		}
	})

	t.Run("requesting with someone else's list fails", func(t *testing.T) {
		_, err := env.memberships.Request(ctx, group.ID, bob.ID, leaderList.ID)
		if !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("error = %v, want ErrInvalidSelection", err)
		}
	})

	t.Run("leader requesting own group is already a member", func(t *testing.T) {
		res, err := env.memberships.Request(ctx, group.ID, leader.ID, leaderList.ID)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if res.Outcome != OutcomeAlreadyMember {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeAlreadyMember)
		}
	})

	t.Run("deny then fresh re-request", func(t *testing.T) {
		if _, err := env.memberships.Deny(ctx, group.ID, leader.ID, bob.ID); err != nil {
			t.Fatalf("Deny failed: %v", err)
		}

		res, err := env.memberships.Request(ctx, group.ID, bob.ID, bobList.ID)
		if err != nil {
			t.Fatalf("Request after denial failed: %v", err)
		}
		if res.Outcome != OutcomeRequested {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeRequested)
		}
		if res.Membership.State() != models.StatePendingRequest {
			t.Errorf("state = %v, want pending request", res.Membership.State())
		}
	})

	t.Run("approve links the selected list", func(t *testing.T) {
		res, err := env.memberships.Approve(ctx, group.ID, leader.ID, bob.ID)
		if err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
		if res.Outcome != OutcomeApproved {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeApproved)
		}

		linked, err := env.store.ListLinked(ctx, group.ID, bobList.ID)
		if err != nil {
			t.Fatalf("ListLinked failed: %v", err)
		}
		if !linked {
			t.Error("approved member's list not linked")
		}
	})

	t.Run("approve by non-leader forbidden", func(t *testing.T) {
		carol := env.user(t, "carol")
		carolList := env.list(t, carol.ID, "Carol's list")
		if _, err := env.memberships.Request(ctx, group.ID, carol.ID, carolList.ID); err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		_, err := env.memberships.Approve(ctx, group.ID, bob.ID, carol.ID)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})
}

func TestInviteFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leader := env.user(t, "leader")
	bob := env.user(t, "bob")
	leaderList := env.list(t, leader.ID, "Leader's list")
	bobList := env.list(t, bob.ID, "Bob's list")
	group := env.group(t, leader.ID, "Cabin", leaderList.ID)

	t.Run("invite by username", func(t *testing.T) {
		res, err := env.memberships.Invite(ctx, group.ID, leader.ID, "bob")
		if err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		if res.Outcome != OutcomeInvited {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeInvited)
		}
	})

	t.Run("re-invite reports already invited", func(t *testing.T) {
		res, err := env.memberships.Invite(ctx, group.ID, leader.ID, "bob@example.com")
		if err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		if res.Outcome != OutcomeAlreadyInvited {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeAlreadyInvited)
		}
	})

	t.Run("request while invited points at the invite", func(t *testing.T) {
		res, err := env.memberships.Request(ctx, group.ID, bob.ID, bobList.ID)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if res.Outcome != OutcomeInvitePending {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeInvitePending)
		}
	})

	t.Run("accept requires own list", func(t *testing.T) {
		_, err := env.memberships.Accept(ctx, group.ID, bob.ID, leaderList.ID)
		if !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("error = %v, want ErrInvalidSelection", err)
		}
	})

	t.Run("accept approves and links", func(t *testing.T) {
		res, err := env.memberships.Accept(ctx, group.ID, bob.ID, bobList.ID)
		if err != nil {
			t.Fatalf("Accept failed: %v", err)
		}
		if res.Outcome != OutcomeAccepted {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeAccepted)
		}
		if res.Membership.State() != models.StateApproved {
			t.Errorf("state = %v, want approved", res.Membership.State())
		}

		linked, err := env.store.ListLinked(ctx, group.ID, bobList.ID)
		if err != nil {
			t.Fatalf("ListLinked failed: %v", err)
		}
		if !linked {
			t.Error("accepted member's list not linked")
		}
	})

	t.Run("invite unknown user", func(t *testing.T) {
		_, err := env.memberships.Invite(ctx, group.ID, leader.ID, "nobody")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invite by non-leader forbidden", func(t *testing.T) {
		_, err := env.memberships.Invite(ctx, group.ID, bob.ID, "leader")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})
}

func TestInviteOnPendingRequestApproves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leader := env.user(t, "leader")
	bob := env.user(t, "bob")
	leaderList := env.list(t, leader.ID, "Leader's list")
	bobList := env.list(t, bob.ID, "Bob's list")
	group := env.group(t, leader.ID, "Cabin", leaderList.ID)

	if _, err := env.memberships.Request(ctx, group.ID, bob.ID, bobList.ID); err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	// Both sides have consented, so the invite resolves the pending request.
	res, err := env.memberships.Invite(ctx, group.ID, leader.ID, "bob")
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if res.Outcome != OutcomeApproved {
		t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeApproved)
	}

	linked, err := env.store.ListLinked(ctx, group.ID, bobList.ID)
	if err != nil {
		t.Fatalf("ListLinked failed: %v", err)
	}
	if !linked {
		t.Error("selected list not linked on invite-approval")
	}
}

func TestDecline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leader := env.user(t, "leader")
	bob := env.user(t, "bob")
	leaderList := env.list(t, leader.ID, "Leader's list")
	group := env.group(t, leader.ID, "Cabin", leaderList.ID)

	t.Run("declining without an invite is a no-op", func(t *testing.T) {
		res, err := env.memberships.Decline(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("Decline failed: %v", err)
		}
		if res.Outcome != OutcomeNoEffect {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeNoEffect)
		}
	})

	t.Run("declining a pending invite removes the row", func(t *testing.T) {
		if _, err := env.memberships.Invite(ctx, group.ID, leader.ID, "bob"); err != nil {
			t.Fatalf("Invite failed: %v", err)
		}

		res, err := env.memberships.Decline(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("Decline failed: %v", err)
		}
		if res.Outcome != OutcomeDeclined {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeDeclined)
		}
		if len(res.Cascade.Memberships) != 1 {
			t.Errorf("cascade removed %d memberships, want 1", len(res.Cascade.Memberships))
		}
	})
}

func TestLeaveAndKick(t *testing.T) {
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

	t.Run("leader cannot leave", func(t *testing.T) {
		_, err := env.memberships.Leave(ctx, group.ID, leader.ID)
		if !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("error = %v, want ErrInvalidOperation", err)
		}
	})

	t.Run("leave runs the removal cascade", func(t *testing.T) {
		// Bob claims something first so the cascade has claims to sweep.
		item := env.item(t, leaderList.ID, leader.ID, "Gloves")
		if _, err := env.claims.Claim(ctx, group.ID, item.ID, bob.ID); err != nil {
			t.Fatalf("Claim failed: %v", err)
		}

		res, err := env.memberships.Leave(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("Leave failed: %v", err)
		}
		if res.Outcome != OutcomeLeft {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeLeft)
		}
		if len(res.Cascade.Claims) != 1 || len(res.Cascade.Memberships) != 1 {
			t.Errorf("cascade = %+v", res.Cascade)
		}

		linked, err := env.store.ListLinked(ctx, group.ID, bobList.ID)
		if err != nil {
			t.Fatalf("ListLinked failed: %v", err)
		}
		if linked {
			t.Error("leaver's list still linked")
		}
	})

	t.Run("kick by non-leader forbidden", func(t *testing.T) {
		_, err := env.memberships.Kick(ctx, group.ID, carol.ID, leader.ID)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})

	t.Run("leader cannot kick themselves", func(t *testing.T) {
		_, err := env.memberships.Kick(ctx, group.ID, leader.ID, leader.ID)
		if !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("error = %v, want ErrInvalidOperation", err)
		}
	})

	t.Run("kick removes the member", func(t *testing.T) {
		res, err := env.memberships.Kick(ctx, group.ID, leader.ID, carol.ID)
		if err != nil {
			t.Fatalf("Kick failed: %v", err)
		}
		if res.Outcome != OutcomeKicked {
			t.Errorf("outcome = %s, want %s", res.Outcome, OutcomeKicked)
		}
		if _, err := env.store.GetMembership(ctx, group.ID, carol.ID); err == nil {
			t.Error("kicked membership still present")
		}
	})
}

func TestManageView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leader := env.user(t, "leader")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	dave := env.user(t, "dave")
	leaderList := env.list(t, leader.ID, "Leader's list")
	bobList := env.list(t, bob.ID, "Bob's list")
	carolList := env.list(t, carol.ID, "Carol's list")
	group := env.group(t, leader.ID, "Cabin", leaderList.ID)

	env.approveMember(t, group, bob.ID, bobList.ID)
	if _, err := env.memberships.Request(ctx, group.ID, carol.ID, carolList.ID); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	// Denied rows are neither pending nor approved.
	daveList := env.list(t, dave.ID, "Dave's list")
	if _, err := env.memberships.Request(ctx, group.ID, dave.ID, daveList.ID); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if _, err := env.memberships.Deny(ctx, group.ID, leader.ID, dave.ID); err != nil {
		t.Fatalf("Deny failed: %v", err)
	}

	view, err := env.memberships.Manage(ctx, group.ID, leader.ID)
	if err != nil {
		t.Fatalf("Manage failed: %v", err)
	}

	if len(view.Approved) != 2 { // leader + bob
		t.Errorf("approved = %d entries, want 2", len(view.Approved))
	}
	if len(view.Pending) != 1 || view.Pending[0].User.Username != "carol" {
		t.Errorf("unexpected pending entries: %+v", view.Pending)
	}
	if view.Pending[0].List == nil || view.Pending[0].List.ID != carolList.ID {
		t.Error("pending entry missing selected list")
	}

	t.Run("non-leader forbidden", func(t *testing.T) {
		if _, err := env.memberships.Manage(ctx, group.ID, bob.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})
}
