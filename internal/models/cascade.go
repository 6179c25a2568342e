package models

// CascadeResult reports every row a cascade deleted, for audit logging and
// tests. Cascades run inside a single transaction; a partial result is never
// observable.
type CascadeResult struct {
	Memberships []string
	ListLinks   []ListGroup
	Items       []string
	Claims      []string
	Lists       []string
	Groups      []string
	Users       []string
}

// Merge folds another result into this one. Used by the account-deletion
// cascade, which is composed of group and member cascades.
func (r *CascadeResult) Merge(other *CascadeResult) {
	if other == nil {
		return
	}
	r.Memberships = append(r.Memberships, other.Memberships...)
	r.ListLinks = append(r.ListLinks, other.ListLinks...)
	r.Items = append(r.Items, other.Items...)
	r.Claims = append(r.Claims, other.Claims...)
	r.Lists = append(r.Lists, other.Lists...)
	r.Groups = append(r.Groups, other.Groups...)
	r.Users = append(r.Users, other.Users...)
}

// Total is the number of rows deleted across all entity types.
func (r *CascadeResult) Total() int {
	return len(r.Memberships) + len(r.ListLinks) + len(r.Items) +
		len(r.Claims) + len(r.Lists) + len(r.Groups) + len(r.Users)
}
