package models

import (
	"errors"
	"testing"
)

func TestMembershipState(t *testing.T) {
	tests := []struct {
		name     string
		approved bool
		denied   bool
		invited  bool
		want     MembershipState
	}{
		{"fresh request", false, false, false, StatePendingRequest},
		{"invited", false, false, true, StatePendingInvite},
		{"approved", true, false, false, StateApproved},
		{"denied", false, true, false, StateDenied},
		{"denied wins over stale invited flag", false, true, true, StateDenied},
		{"approved wins over stale invited flag", true, false, true, StateApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Membership{Approved: tt.approved, Denied: tt.denied, Invited: tt.invited}
			if got := m.State(); got != tt.want {
				t.Errorf("State() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMembershipStateIn(t *testing.T) {
	group := &Group{ID: "g1", LeaderID: "leader"}

	t.Run("leader override", func(t *testing.T) {
		m := NewMembership("g1", "leader", "l1", StateApproved)
		if got := m.StateIn(group); got != StateLeader {
			t.Errorf("StateIn() = %v, want %v", got, StateLeader)
		}
	})

	t.Run("regular member", func(t *testing.T) {
		m := NewMembership("g1", "bob", "l2", StateApproved)
		if got := m.StateIn(group); got != StateApproved {
			t.Errorf("StateIn() = %v, want %v", got, StateApproved)
		}
	})
}

func TestMembershipApply(t *testing.T) {
	legal := []struct {
		name   string
		from   MembershipState
		action Action
		want   MembershipState
	}{
		{"approve pending request", StatePendingRequest, ActionApprove, StateApproved},
		{"deny pending request", StatePendingRequest, ActionDeny, StateDenied},
		{"invite on pending request approves", StatePendingRequest, ActionInvite, StateApproved},
		{"accept pending invite", StatePendingInvite, ActionAccept, StateApproved},
		{"re-request after denial", StateDenied, ActionRequest, StatePendingRequest},
		{"re-invite after denial", StateDenied, ActionInvite, StatePendingInvite},
	}

	for _, tt := range legal {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMembership("g1", "u1", "", tt.from)
			if err := m.Apply(tt.action); err != nil {
				t.Fatalf("Apply(%v) failed: %v", tt.action, err)
			}
			if got := m.State(); got != tt.want {
				t.Errorf("state after Apply(%v) = %v, want %v", tt.action, got, tt.want)
			}
		})
	}

	illegal := []struct {
		name   string
		from   MembershipState
		action Action
	}{
		{"approve an approved member", StateApproved, ActionApprove},
		{"deny an approved member", StateApproved, ActionDeny},
		{"accept without an invite", StatePendingRequest, ActionAccept},
		{"approve a pending invite", StatePendingInvite, ActionApprove},
		{"deny a denied member again", StateDenied, ActionDeny},
		{"request while approved", StateApproved, ActionRequest},
	}

	for _, tt := range illegal {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMembership("g1", "u1", "", tt.from)
			err := m.Apply(tt.action)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Apply(%v) error = %v, want ErrInvalidTransition", tt.action, err)
			}
			if got := m.State(); got != tt.from {
				t.Errorf("rejected transition changed state to %v, want %v untouched", got, tt.from)
			}
		})
	}
}

func TestNewMembershipCanonicalFlags(t *testing.T) {
	tests := []struct {
		state    MembershipState
		approved bool
		denied   bool
		invited  bool
	}{
		{StatePendingRequest, false, false, false},
		{StatePendingInvite, false, false, true},
		{StateApproved, true, false, false},
		{StateDenied, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			m := NewMembership("g1", "u1", "", tt.state)
			if m.Approved != tt.approved || m.Denied != tt.denied || m.Invited != tt.invited {
				t.Errorf("flags = (%v, %v, %v), want (%v, %v, %v)",
					m.Approved, m.Denied, m.Invited, tt.approved, tt.denied, tt.invited)
			}
		})
	}
}
