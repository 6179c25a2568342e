package models

import "errors"

// ErrInvalidTransition is returned by Membership.Apply for moves the state
// machine does not allow (e.g. accepting an invite that was never sent).
var ErrInvalidTransition = errors.New("invalid membership transition")

// Membership is the (group, user) relation, unique per pair.
//
// The three booleans are a flattened encoding of MembershipState. They are
// only ever written through Apply/setState, so contradictory combinations
// (approved and denied at once) cannot occur.
type Membership struct {
	// ID is the unique identifier for the membership (UUID format).
	ID string

	// GroupID and UserID identify the pair; unique together.
	GroupID string
	UserID  string

	// SelectedListID is the gift list this member shows to the group.
	// Empty until the member picks one (invitees pick on accept).
	SelectedListID string

	// Approved means the member has full view/claim rights.
	Approved bool

	// Denied means the leader rejected a join request. Terminal until the
	// user re-requests or is re-invited.
	Denied bool

	// Invited means the leader asked the user to join and the user has not
	// answered yet. Irrelevant once approved.
	Invited bool

	// CreatedAt is the Unix timestamp when the membership row was created.
	CreatedAt int64
}

// MembershipState is the explicit state behind the stored booleans.
type MembershipState int

const (
	// StateLeader marks the group creator; implicit, never transitions.
	StateLeader MembershipState = iota

	// StatePendingRequest: the user asked to join, leader has not answered.
	StatePendingRequest

	// StatePendingInvite: the leader asked the user to join.
	StatePendingInvite

	// StateApproved: active member.
	StateApproved

	// StateDenied: leader rejected a request; terminal until re-request
	// or re-invite.
	StateDenied
)

func (s MembershipState) String() string {
	switch s {
	case StateLeader:
		return "leader"
	case StatePendingRequest:
		return "pending_request"
	case StatePendingInvite:
		return "pending_invite"
	case StateApproved:
		return "approved"
	case StateDenied:
		return "denied"
	}
	return "unknown"
}

// State derives the membership state from the stored booleans.
// The leader's row reads as StateApproved here; use StateIn when the group
// is at hand to get StateLeader.
func (m *Membership) State() MembershipState {
	switch {
	case m.Denied:
		return StateDenied
	case m.Approved:
		return StateApproved
	case m.Invited:
		return StatePendingInvite
	default:
		return StatePendingRequest
	}
}

// StateIn is State with the leader override applied.
func (m *Membership) StateIn(g *Group) MembershipState {
	if g != nil && m.UserID == g.LeaderID {
		return StateLeader
	}
	return m.State()
}

// Action is a flag-mutating move on an existing membership row.
// Creation and removal of rows (request on no row, decline, leave, kick)
// are handled by the membership engine, not here.
type Action int

const (
	// ActionApprove: leader approves a pending request.
	ActionApprove Action = iota

	// ActionDeny: leader rejects a pending request.
	ActionDeny

	// ActionAccept: invitee accepts a pending invite.
	ActionAccept

	// ActionRequest: a previously denied user asks to join again.
	ActionRequest

	// ActionInvite: leader (re-)invites. On a pending request this approves
	// it — both sides have consented; on a denied row it opens a fresh
	// invite.
	ActionInvite
)

func (a Action) String() string {
	switch a {
	case ActionApprove:
		return "approve"
	case ActionDeny:
		return "deny"
	case ActionAccept:
		return "accept"
	case ActionRequest:
		return "request"
	case ActionInvite:
		return "invite"
	}
	return "unknown"
}

// transitions is the legal-move table: (current state, action) -> next state.
var transitions = map[MembershipState]map[Action]MembershipState{
	StatePendingRequest: {
		ActionApprove: StateApproved,
		ActionDeny:    StateDenied,
		ActionInvite:  StateApproved,
	},
	StatePendingInvite: {
		ActionAccept: StateApproved,
	},
	StateDenied: {
		ActionRequest: StatePendingRequest,
		ActionInvite:  StatePendingInvite,
	},
}

// Apply validates the transition for the membership's current state and,
// when legal, rewrites the flags to the canonical combination of the next
// state. Returns ErrInvalidTransition otherwise, leaving the row untouched.
func (m *Membership) Apply(a Action) error {
	next, ok := transitions[m.State()][a]
	if !ok {
		return ErrInvalidTransition
	}
	m.setState(next)
	return nil
}

// setState writes the canonical boolean combination for a state.
// This is the only place the three flags are assigned together.
func (m *Membership) setState(s MembershipState) {
	switch s {
	case StateApproved, StateLeader:
		m.Approved, m.Denied, m.Invited = true, false, false
	case StateDenied:
		m.Approved, m.Denied, m.Invited = false, true, false
	case StatePendingInvite:
		m.Approved, m.Denied, m.Invited = false, false, true
	case StatePendingRequest:
		m.Approved, m.Denied, m.Invited = false, false, false
	}
}

// NewMembership creates a membership row in the given initial state.
// Only the two entry states are meaningful here; anything else is a
// programming error and is written as-is by setState.
func NewMembership(groupID, userID, selectedListID string, s MembershipState) *Membership {
	m := &Membership{
		GroupID:        groupID,
		UserID:         userID,
		SelectedListID: selectedListID,
	}
	m.setState(s)
	return m
}
