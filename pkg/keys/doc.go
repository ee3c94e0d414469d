// Package keys generates, loads and imports the RSA key material actors
// sign with.
//
// Keys are 3072-bit RSA, persisted as PEM text files at operator-supplied
// paths. Generate refuses to overwrite existing files; losing a private key
// to an accidental regeneration would orphan the actor's federated identity.
//
// Load and import functions propagate absence instead of failing: an empty
// path or empty PEM text yields a nil key (or empty string) with no error.
// Downstream code relies on this to distinguish "actor without a key" from
// "key that failed to parse".
package keys
