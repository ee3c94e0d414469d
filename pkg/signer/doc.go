// Package signer produces the authentication headers for outbound federated
// requests.
//
// Every delivery and inbox read is signed: the body is digested with
// SHA-256, a canonical string is assembled from the request target, digest,
// host and date, and the string is signed with RSASSA-PKCS1-v1_5. The
// resulting headers are:
//
//	Digest:    sha-256=<base64 body hash>
//	Host:      <target hostname>
//	Date:      <RFC 1123 GMT>
//	Signature: keyId="...",headers="(request-target) digest host date",signature="..."
//
// The keyId names the URL a recipient can resolve the sender's public key
// from; the headers field declares exactly which components the signature
// covers, in order, so the verifier package can rebuild the identical
// canonical string.
//
// Usage:
//
//	s := signer.NewDefaultSigner()
//	headers, err := s.Sign("POST", recipient.Inbox, sender, body, time.Time{})
//	if err != nil {
//	    return err
//	}
//	for name := range headers {
//	    req.Header.Set(name, headers.Get(name))
//	}
//
// Signing fails with ErrNoPrivateKey when the sender identity was built
// without key material.
package signer
