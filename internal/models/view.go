package models

// GroupView is the value object produced for one member's view of a group.
// Items are already visibility-filtered for the viewer; presentation renders
// this as-is and owns nothing beyond formatting.
type GroupView struct {
	Group *Group

	// VisibleLists are the gift lists linked into the group.
	VisibleLists []*GiftList

	// ItemsForList maps list ID to the items the viewer may see in this
	// group's context.
	ItemsForList map[string][]*Item

	// Members are the approved members (leader included).
	Members []*User

	// ListForOwner maps a member's user ID to their list in this group.
	ListForOwner map[string]*GiftList

	// ClaimedItemIDs holds every item claimed by anyone in this group.
	ClaimedItemIDs map[string]bool

	// MyClaimedItemIDs holds the items claimed by the viewer in this group;
	// controls the unclaim affordance.
	MyClaimedItemIDs map[string]bool
}

// MemberEntry pairs a membership row with its user and selected list for the
// leader's manage view.
type MemberEntry struct {
	Membership *Membership
	User       *User
	List       *GiftList
}

// ManageView is the leader's administration view of a group.
type ManageView struct {
	Group    *Group
	Pending  []*MemberEntry
	Approved []*MemberEntry
}

// ClaimedGift pairs a claim with its item for the "gifts I'm giving"
// projection, which spans all of the viewer's groups.
type ClaimedGift struct {
	Claim *Claim
	Item  *Item
}

// Dashboard is the account landing view: the user's lists, their groups,
// which list they show in which group, and every gift they are giving.
type Dashboard struct {
	User   *User
	Lists  []*GiftList
	Groups []*Group

	// ListForGroup maps group ID to the viewer's selected list there.
	ListForGroup map[string]*GiftList

	// Giving holds the viewer's claims across all groups.
	Giving []*ClaimedGift
}
