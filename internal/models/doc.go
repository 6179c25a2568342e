// Package models defines the core domain models for the gift-group service.
//
// # Models
//
//   - User: registered account; owns gift lists
//   - GiftList: a user's wish list, a container of items
//   - Item: a single gift idea; soft-hidden from the owner once "removed",
//     optionally scoped to a single group (surprise gifts)
//   - Group: a circle of people exchanging gifts, run by one leader
//   - Membership: the (group, user) relation with its approval state machine
//   - ListGroup: link making a gift list visible inside a group
//   - Claim: one user's reservation of one item within one group
//
// # Design Principles
//
//  1. Relationships are ID strings, never pointers, to avoid circular
//     references and keep models serializable as-is.
//  2. Membership state is a derived enum with a single transition function;
//     the three stored booleans are only ever written in canonical
//     combinations.
//  3. Timestamps are Unix seconds.
package models
