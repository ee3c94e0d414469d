// Package verifier authenticates inbound federated requests.
//
// Verification recomputes the same canonical string the signer package
// builds and checks it against the RSASSA-PKCS1-v1_5 signature carried in
// the Signature header. The checks run in a fixed order and stop at the
// first failure:
//
//  1. Digest, Host, Date and Signature headers present
//  2. Host header matches the local instance hostname
//  3. Digest algorithm is sha-256 and matches the raw body
//  4. Signature header parses into quoted keyId/headers/signature fields
//  5. the keyId resolves to public key material
//  6. the canonical string rebuilds from the signer-declared header list
//  7. the signature validates against the resolved key
//
// Failures 1-6 are 401s (the request never established who it is from);
// failure 7 is a 403 (well-formed, but the signature is wrong). The split
// is carried in VerificationError.Status.
//
// Key resolution is pluggable through KeyResolver. The server resolves from
// its KeyRegistry of registered actors; clients re-verifying drained mail
// resolve by fetching the actor document at the keyId URL (see the resolver
// package).
//
// The KeyRegistry doubles as the server-side registration store. Its
// semantics are first-writer-wins: identical re-registration is an
// idempotent success, a nil entry may be late-bound, and conflicting
// material is an error to the later caller.
package verifier
