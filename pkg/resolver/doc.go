// Package resolver performs remote actor discovery.
//
// ResolveHandle implements the two-step protocol: a webfinger query on the
// handle's instance finds the actor URL (the link with rel "self"), then the
// actor document at that URL yields the identity and public key. ResolveURL
// skips discovery when a concrete actor URL is already in hand, which is
// also how signature keyIds are resolved on the client side
// (FetchKeyResolver).
//
// Resolution is on-demand with no caching; staleness policy is left to
// callers.
package resolver
