// Package actor models federated identities and their wire documents.
//
// An Actor ties together a username, the instance hosting it, its canonical
// URL, inbox, and RSA key material. Actors come into being two ways:
//
//   - Local: built from configuration and key files, no network involved.
//     This is how a node describes its own users before registration.
//   - FromDocument: built from a fetched actor profile document, typically
//     via the resolver package's webfinger + profile fetch.
//
// ParseHandle implements the "user" / "user@host" / "@user@host" handle
// grammar, including the consistency check against an explicitly supplied
// instance argument.
package actor
