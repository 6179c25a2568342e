package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage"
)

// MembershipService is the membership engine: it owns every transition of
// the (group, user) state machine — request, invite, approve, deny, accept,
// decline, leave, kick — and the cleanup cascades removal triggers.
//
// Transitions are idempotent by intent: re-running one either converges to
// the same state or is reported as a no-op outcome, never a duplicate row.
type MembershipService struct {
	store storage.Store
}

// NewMembershipService creates a new MembershipService with the given
// storage backend.
func NewMembershipService(store storage.Store) *MembershipService {
	return &MembershipService{store: store}
}

// MembershipResult reports what a transition did.
type MembershipResult struct {
	Outcome    Outcome
	Membership *models.Membership
}

// RemovalResult reports a membership removal and the rows its cascade
// deleted.
type RemovalResult struct {
	Outcome Outcome
	Cascade *models.CascadeResult
}

// Request asks to join a group, showing listID to it. The list must be
// owned by the requester. A pending request is reported, not duplicated;
// a denial is overwritten by a fresh request.
func (s *MembershipService) Request(ctx context.Context, groupID, userID, listID string) (*MembershipResult, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnList(ctx, userID, listID); err != nil {
		return nil, err
	}
	if group.LeaderID == userID {
		return &MembershipResult{Outcome: OutcomeAlreadyMember}, nil
	}

	mem, err := s.store.GetMembership(ctx, groupID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		mem = models.NewMembership(groupID, userID, listID, models.StatePendingRequest)
		if err := s.store.CreateMembership(ctx, mem); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				// Lost a race against our own double-submit.
				return &MembershipResult{Outcome: OutcomeAlreadyPending}, nil
			}
			return nil, err
		}
		slog.Info("join requested", "group_id", groupID, "user_id", userID)
		return &MembershipResult{Outcome: OutcomeRequested, Membership: mem}, nil
	}
	if err != nil {
		return nil, err
	}

	switch mem.State() {
	case models.StateApproved:
		return &MembershipResult{Outcome: OutcomeAlreadyMember, Membership: mem}, nil
	case models.StatePendingRequest:
		return &MembershipResult{Outcome: OutcomeAlreadyPending, Membership: mem}, nil
	case models.StatePendingInvite:
		// An invite is already waiting; the user should accept it.
		return &MembershipResult{Outcome: OutcomeInvitePending, Membership: mem}, nil
	default: // denied: a new request starts fresh
		if err := mem.Apply(models.ActionRequest); err != nil {
			return nil, ErrInvalidOperation
		}
		mem.SelectedListID = listID
		if err := s.store.UpdateMembership(ctx, mem); err != nil {
			return nil, err
		}
		slog.Info("join re-requested after denial", "group_id", groupID, "user_id", userID)
		return &MembershipResult{Outcome: OutcomeRequested, Membership: mem}, nil
	}
}

// Invite lets the leader ask a user (by username or email) to join.
// Inviting an already-approved member is a no-op; inviting someone with a
// pending request approves it, since both sides have consented.
func (s *MembershipService) Invite(ctx context.Context, groupID, leaderID, identifier string) (*MembershipResult, error) {
	group, err := s.requireLeader(ctx, groupID, leaderID)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.ID == group.LeaderID {
		return &MembershipResult{Outcome: OutcomeAlreadyMember}, nil
	}

	mem, err := s.store.GetMembership(ctx, groupID, user.ID)
	if errors.Is(err, storage.ErrNotFound) {
		mem = models.NewMembership(groupID, user.ID, "", models.StatePendingInvite)
		if err := s.store.CreateMembership(ctx, mem); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return &MembershipResult{Outcome: OutcomeAlreadyInvited}, nil
			}
			return nil, err
		}
		slog.Info("user invited", "group_id", groupID, "user_id", user.ID)
		return &MembershipResult{Outcome: OutcomeInvited, Membership: mem}, nil
	}
	if err != nil {
		return nil, err
	}

	switch mem.State() {
	case models.StateApproved:
		return &MembershipResult{Outcome: OutcomeAlreadyMember, Membership: mem}, nil
	case models.StatePendingInvite:
		return &MembershipResult{Outcome: OutcomeAlreadyInvited, Membership: mem}, nil
	case models.StatePendingRequest:
		if err := mem.Apply(models.ActionInvite); err != nil {
			return nil, ErrInvalidOperation
		}
		if err := s.store.UpdateMembership(ctx, mem); err != nil {
			return nil, err
		}
		if err := s.linkSelectedList(ctx, mem); err != nil {
			return nil, err
		}
		slog.Info("pending request approved via invite", "group_id", groupID, "user_id", user.ID)
		return &MembershipResult{Outcome: OutcomeApproved, Membership: mem}, nil
	default: // denied: open a fresh invite
		if err := mem.Apply(models.ActionInvite); err != nil {
			return nil, ErrInvalidOperation
		}
		if err := s.store.UpdateMembership(ctx, mem); err != nil {
			return nil, err
		}
		slog.Info("user re-invited after denial", "group_id", groupID, "user_id", user.ID)
		return &MembershipResult{Outcome: OutcomeInvited, Membership: mem}, nil
	}
}

// Approve lets the leader approve a pending join request. The member's
// selected list becomes visible in the group.
func (s *MembershipService) Approve(ctx context.Context, groupID, leaderID, userID string) (*MembershipResult, error) {
	if _, err := s.requireLeader(ctx, groupID, leaderID); err != nil {
		return nil, err
	}

	mem, err := s.getMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if mem.State() == models.StateApproved {
		return &MembershipResult{Outcome: OutcomeAlreadyMember, Membership: mem}, nil
	}
	if err := mem.Apply(models.ActionApprove); err != nil {
		return nil, ErrInvalidOperation
	}
	if err := s.store.UpdateMembership(ctx, mem); err != nil {
		return nil, err
	}
	if err := s.linkSelectedList(ctx, mem); err != nil {
		return nil, err
	}

	slog.Info("membership approved", "group_id", groupID, "user_id", userID)
	return &MembershipResult{Outcome: OutcomeApproved, Membership: mem}, nil
}

// Deny lets the leader reject a pending join request. The row stays in the
// denied state; the user may request again later.
func (s *MembershipService) Deny(ctx context.Context, groupID, leaderID, userID string) (*MembershipResult, error) {
	if _, err := s.requireLeader(ctx, groupID, leaderID); err != nil {
		return nil, err
	}

	mem, err := s.getMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if mem.State() == models.StateDenied {
		return &MembershipResult{Outcome: OutcomeAlreadyDenied, Membership: mem}, nil
	}
	if err := mem.Apply(models.ActionDeny); err != nil {
		return nil, ErrInvalidOperation
	}
	if err := s.store.UpdateMembership(ctx, mem); err != nil {
		return nil, err
	}

	slog.Info("membership denied", "group_id", groupID, "user_id", userID)
	return &MembershipResult{Outcome: OutcomeDenied, Membership: mem}, nil
}

// Accept lets an invitee take up a pending invite, picking the list they
// will show to the group.
func (s *MembershipService) Accept(ctx context.Context, groupID, userID, listID string) (*MembershipResult, error) {
	if _, err := s.getGroup(ctx, groupID); err != nil {
		return nil, err
	}
	mem, err := s.getMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if mem.State() == models.StateApproved {
		return &MembershipResult{Outcome: OutcomeAlreadyMember, Membership: mem}, nil
	}
	if err := s.requireOwnList(ctx, userID, listID); err != nil {
		return nil, err
	}
	if err := mem.Apply(models.ActionAccept); err != nil {
		return nil, ErrInvalidOperation
	}
	mem.SelectedListID = listID
	if err := s.store.UpdateMembership(ctx, mem); err != nil {
		return nil, err
	}
	if err := s.linkSelectedList(ctx, mem); err != nil {
		return nil, err
	}

	slog.Info("invite accepted", "group_id", groupID, "user_id", userID)
	return &MembershipResult{Outcome: OutcomeAccepted, Membership: mem}, nil
}

// Decline turns down a pending invite and removes the row. Declining an
// invite that does not exist is a successful no-op.
func (s *MembershipService) Decline(ctx context.Context, groupID, userID string) (*RemovalResult, error) {
	if _, err := s.getGroup(ctx, groupID); err != nil {
		return nil, err
	}
	mem, err := s.store.GetMembership(ctx, groupID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return &RemovalResult{Outcome: OutcomeNoEffect, Cascade: &models.CascadeResult{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if mem.State() != models.StatePendingInvite {
		return nil, ErrInvalidOperation
	}

	res, err := s.store.RemoveMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	slog.Info("invite declined", "group_id", groupID, "user_id", userID)
	return &RemovalResult{Outcome: OutcomeDeclined, Cascade: res}, nil
}

// Leave removes the caller's own standing in the group and runs the
// member-removal cascade. The leader cannot leave; they must delete the
// group. Leaving also withdraws a pending request or clears a denial.
func (s *MembershipService) Leave(ctx context.Context, groupID, userID string) (*RemovalResult, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.LeaderID == userID {
		return nil, ErrInvalidOperation
	}
	if _, err := s.getMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	res, err := s.store.RemoveMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	slog.Info("member left group",
		"group_id", groupID,
		"user_id", userID,
		"rows_deleted", res.Total(),
	)
	return &RemovalResult{Outcome: OutcomeLeft, Cascade: res}, nil
}

// Kick lets the leader remove any member (in any state) from the group,
// running the member-removal cascade. The leader cannot kick themselves.
func (s *MembershipService) Kick(ctx context.Context, groupID, leaderID, userID string) (*RemovalResult, error) {
	group, err := s.requireLeader(ctx, groupID, leaderID)
	if err != nil {
		return nil, err
	}
	if userID == group.LeaderID {
		return nil, ErrInvalidOperation
	}
	if _, err := s.getMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	res, err := s.store.RemoveMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	slog.Info("member kicked",
		"group_id", groupID,
		"user_id", userID,
		"by", leaderID,
		"rows_deleted", res.Total(),
	)
	return &RemovalResult{Outcome: OutcomeKicked, Cascade: res}, nil
}

// Manage builds the leader's administration view: pending requests and
// invites on one side, approved members on the other, each with their user
// and selected list resolved.
func (s *MembershipService) Manage(ctx context.Context, groupID, leaderID string) (*models.ManageView, error) {
	group, err := s.requireLeader(ctx, groupID, leaderID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.store.MembershipsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	view := &models.ManageView{Group: group}
	for _, mem := range memberships {
		entry, err := s.memberEntry(ctx, mem)
		if err != nil {
			return nil, err
		}
		if mem.State() == models.StateApproved {
			view.Approved = append(view.Approved, entry)
		} else if mem.State() != models.StateDenied {
			view.Pending = append(view.Pending, entry)
		}
	}
	return view, nil
}

func (s *MembershipService) memberEntry(ctx context.Context, mem *models.Membership) (*models.MemberEntry, error) {
	entry := &models.MemberEntry{Membership: mem}

	user, err := s.store.GetUser(ctx, mem.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	entry.User = user

	if mem.SelectedListID != "" {
		list, err := s.store.GetList(ctx, mem.SelectedListID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		entry.List = list
	}
	return entry, nil
}

// linkSelectedList makes the member's selected list visible in the group.
// Idempotent; a member without a selected list links nothing.
func (s *MembershipService) linkSelectedList(ctx context.Context, mem *models.Membership) error {
	if mem.SelectedListID == "" {
		return nil
	}
	return s.store.LinkList(ctx, mem.GroupID, mem.SelectedListID)
}

func (s *MembershipService) getGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *MembershipService) getMembership(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	mem, err := s.store.GetMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return mem, nil
}

func (s *MembershipService) requireLeader(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.LeaderID != userID {
		return nil, ErrForbidden
	}
	return group, nil
}

func (s *MembershipService) requireOwnList(ctx context.Context, userID, listID string) error {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInvalidSelection
		}
		return err
	}
	if list.OwnerID != userID {
		return ErrInvalidSelection
	}
	return nil
}
