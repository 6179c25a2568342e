package service

// Outcome tells the caller what a mutation actually did. Several operations
// are idempotent by intent: re-running them is a success that changes
// nothing, and the outcome is how that is reported for user messaging
// ("already pending", "nothing to remove") without an error.
type Outcome string

const (
	// Membership engine
	OutcomeRequested      Outcome = "requested"
	OutcomeAlreadyPending Outcome = "already_pending"
	OutcomeInvitePending  Outcome = "invite_pending"
	OutcomeInvited        Outcome = "invited"
	OutcomeAlreadyInvited Outcome = "already_invited"
	OutcomeAlreadyMember  Outcome = "already_member"
	OutcomeApproved       Outcome = "approved"
	OutcomeDenied         Outcome = "denied"
	OutcomeAlreadyDenied  Outcome = "already_denied"
	OutcomeAccepted       Outcome = "accepted"
	OutcomeDeclined       Outcome = "declined"
	OutcomeLeft           Outcome = "left"
	OutcomeKicked         Outcome = "kicked"

	// Claim engine
	OutcomeClaimed         Outcome = "claimed"
	OutcomeAlreadyYours    Outcome = "already_claimed_by_you"
	OutcomeUnclaimed       Outcome = "unclaimed"
	OutcomeNothingToRemove Outcome = "nothing_to_remove"

	// Shared no-op
	OutcomeNoEffect Outcome = "no_effect"
)
