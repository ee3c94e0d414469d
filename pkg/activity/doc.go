// Package activity constructs ActivityStreams payloads: Create envelopes,
// Notes with the full Mastodon-compatible field set, and Follow requests.
//
// Ids are minted in the sender's id space as "{actor.id}/{token}", where the
// token is a fresh random 32-bit value. Uniqueness is only required within
// one sender, never globally.
package activity
