package handler

import (
	"sort"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/service"
)

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt int64  `json:"created_at"`
}

func toUser(u *models.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: u.CreatedAt}
}

type listResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

func toList(l *models.GiftList) *listResponse {
	if l == nil {
		return nil
	}
	return &listResponse{ID: l.ID, OwnerID: l.OwnerID, Name: l.Name, CreatedAt: l.CreatedAt}
}

func toLists(lists []*models.GiftList) []*listResponse {
	out := make([]*listResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, toList(l))
	}
	return out
}

type itemResponse struct {
	ID           string `json:"id"`
	ListID       string `json:"list_id"`
	Name         string `json:"name"`
	URL          string `json:"url,omitempty"`
	Notes        string `json:"notes,omitempty"`
	AddedByID    string `json:"added_by_id"`
	HighPriority bool   `json:"high_priority"`
	Surprise     bool   `json:"surprise"`
	GroupID      string `json:"group_id,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

func toItem(i *models.Item) *itemResponse {
	if i == nil {
		return nil
	}
	return &itemResponse{
		ID:           i.ID,
		ListID:       i.ListID,
		Name:         i.Name,
		URL:          i.URL,
		Notes:        i.Notes,
		AddedByID:    i.AddedByID,
		HighPriority: i.HighPriority,
		Surprise:     i.Surprise(),
		GroupID:      i.GroupID,
		CreatedAt:    i.CreatedAt,
	}
}

func toItems(items []*models.Item) []*itemResponse {
	out := make([]*itemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toItem(i))
	}
	return out
}

type groupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LeaderID  string `json:"leader_id"`
	CreatedAt int64  `json:"created_at"`
}

func toGroup(g *models.Group) *groupResponse {
	if g == nil {
		return nil
	}
	return &groupResponse{ID: g.ID, Name: g.Name, LeaderID: g.LeaderID, CreatedAt: g.CreatedAt}
}

func toGroups(groups []*models.Group) []*groupResponse {
	out := make([]*groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroup(g))
	}
	return out
}

type claimResponse struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	GroupID   string `json:"group_id"`
	ClaimerID string `json:"claimer_id"`
	CreatedAt int64  `json:"created_at"`
}

func toClaim(c *models.Claim) *claimResponse {
	if c == nil {
		return nil
	}
	return &claimResponse{ID: c.ID, ItemID: c.ItemID, GroupID: c.GroupID, ClaimerID: c.ClaimerID, CreatedAt: c.CreatedAt}
}

type membershipResponse struct {
	GroupID        string `json:"group_id"`
	UserID         string `json:"user_id"`
	SelectedListID string `json:"selected_list_id,omitempty"`
	State          string `json:"state"`
}

func toMembership(m *models.Membership) *membershipResponse {
	if m == nil {
		return nil
	}
	return &membershipResponse{
		GroupID:        m.GroupID,
		UserID:         m.UserID,
		SelectedListID: m.SelectedListID,
		State:          m.State().String(),
	}
}

type memberEntryResponse struct {
	Membership *membershipResponse `json:"membership"`
	User       *userResponse       `json:"user,omitempty"`
	List       *listResponse       `json:"list,omitempty"`
}

func toMemberEntries(entries []*models.MemberEntry) []*memberEntryResponse {
	out := make([]*memberEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &memberEntryResponse{
			Membership: toMembership(e.Membership),
			User:       toUser(e.User),
			List:       toList(e.List),
		})
	}
	return out
}

// cascadeResponse reports how many rows of each kind a cascade deleted.
type cascadeResponse struct {
	Memberships int `json:"memberships"`
	ListLinks   int `json:"list_links"`
	Items       int `json:"items"`
	Claims      int `json:"claims"`
	Lists       int `json:"lists"`
	Groups      int `json:"groups"`
	Users       int `json:"users"`
}

func toCascade(r *models.CascadeResult) *cascadeResponse {
	if r == nil {
		return &cascadeResponse{}
	}
	return &cascadeResponse{
		Memberships: len(r.Memberships),
		ListLinks:   len(r.ListLinks),
		Items:       len(r.Items),
		Claims:      len(r.Claims),
		Lists:       len(r.Lists),
		Groups:      len(r.Groups),
		Users:       len(r.Users),
	}
}

type listWithItemsResponse struct {
	List  *listResponse   `json:"list"`
	Items []*itemResponse `json:"items"`
}

type groupViewResponse struct {
	Group            *groupResponse           `json:"group"`
	Lists            []*listWithItemsResponse `json:"lists"`
	Members          []*userResponse          `json:"members"`
	ClaimedItemIDs   []string                 `json:"claimed_item_ids"`
	MyClaimedItemIDs []string                 `json:"my_claimed_item_ids"`
}

func toGroupView(v *models.GroupView) *groupViewResponse {
	out := &groupViewResponse{
		Group:            toGroup(v.Group),
		Lists:            make([]*listWithItemsResponse, 0, len(v.VisibleLists)),
		Members:          make([]*userResponse, 0, len(v.Members)),
		ClaimedItemIDs:   sortedKeys(v.ClaimedItemIDs),
		MyClaimedItemIDs: sortedKeys(v.MyClaimedItemIDs),
	}
	for _, list := range v.VisibleLists {
		out.Lists = append(out.Lists, &listWithItemsResponse{
			List:  toList(list),
			Items: toItems(v.ItemsForList[list.ID]),
		})
	}
	for _, u := range v.Members {
		out.Members = append(out.Members, toUser(u))
	}
	return out
}

type manageViewResponse struct {
	Group    *groupResponse         `json:"group"`
	Pending  []*memberEntryResponse `json:"pending"`
	Approved []*memberEntryResponse `json:"approved"`
}

type claimedGiftResponse struct {
	Claim *claimResponse `json:"claim"`
	Item  *itemResponse  `json:"item"`
}

func toClaimedGifts(gifts []*models.ClaimedGift) []*claimedGiftResponse {
	out := make([]*claimedGiftResponse, 0, len(gifts))
	for _, g := range gifts {
		out = append(out, &claimedGiftResponse{Claim: toClaim(g.Claim), Item: toItem(g.Item)})
	}
	return out
}

type dashboardResponse struct {
	User         *userResponse            `json:"user"`
	Lists        []*listResponse          `json:"lists"`
	Groups       []*groupResponse         `json:"groups"`
	ListForGroup map[string]*listResponse `json:"list_for_group"`
	Giving       []*claimedGiftResponse   `json:"giving"`
}

func toDashboard(d *models.Dashboard) *dashboardResponse {
	out := &dashboardResponse{
		User:         toUser(d.User),
		Lists:        toLists(d.Lists),
		Groups:       toGroups(d.Groups),
		ListForGroup: make(map[string]*listResponse, len(d.ListForGroup)),
		Giving:       toClaimedGifts(d.Giving),
	}
	for groupID, list := range d.ListForGroup {
		out.ListForGroup[groupID] = toList(list)
	}
	return out
}

// outcomeResponse reports what a state-changing call did, including the
// idempotent no-op cases.
type outcomeResponse struct {
	Outcome    service.Outcome     `json:"outcome"`
	Membership *membershipResponse `json:"membership,omitempty"`
	Claim      *claimResponse      `json:"claim,omitempty"`
	Deleted    *cascadeResponse    `json:"deleted,omitempty"`
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
