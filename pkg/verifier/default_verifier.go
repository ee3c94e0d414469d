// Copyright (C) 2025 Phant Project
//
// This file is part of phant-go.
//
// phant-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// phant-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with phant-go.  If not, see <https://www.gnu.org/licenses/>.

package verifier

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/phant-project/phant-go/pkg/instance"
	"github.com/phant-project/phant-go/pkg/signer"
)

// requiredHeaders must all be present before any content is inspected.
var requiredHeaders = []string{"Digest", "Host", "Date", "Signature"}

// requiredSignatureFields must all appear in the Signature header.
var requiredSignatureFields = []string{"keyId", "headers", "signature"}

// DefaultVerifier implements RequestVerifier for RSASSA-PKCS1-v1_5/SHA-256
// signatures in the keyId/headers/signature header format.
type DefaultVerifier struct {
	keys KeyResolver
}

// NewDefaultVerifier creates a verifier that resolves signature keys
// through the given resolver.
func NewDefaultVerifier(keys KeyResolver) *DefaultVerifier {
	return &DefaultVerifier{keys: keys}
}

// Verify runs the checks in fixed order, short-circuiting on the first
// failure: header presence, host match, digest, signature field syntax, key
// resolution, canonical string reconstruction, signature validation.
func (v *DefaultVerifier) Verify(ctx context.Context, local *instance.Instance, req *Request) *VerificationError {
	for _, name := range requiredHeaders {
		if req.Header.Get(name) == "" {
			return unauthorized("Missing Header: %s", name)
		}
	}

	if host := req.Header.Get("Host"); host != local.Hostname {
		return unauthorized("Invalid Host Header: %s should be %s", host, local.Hostname)
	}

	digestParts := strings.SplitN(req.Header.Get("Digest"), "=", 2)
	if len(digestParts) != 2 {
		return unauthorized("Invalid Digest Header")
	}
	if !strings.EqualFold(digestParts[0], "sha-256") {
		return unauthorized("Digest Header uses %s instead of sha-256", digestParts[0])
	}
	// Only the base64 value is compared; the algorithm token already
	// matched case-insensitively above.
	if digestParts[1] != strings.TrimPrefix(signer.Digest(req.Body), "sha-256=") {
		return unauthorized("Invalid Header: Digest")
	}

	fields, verr := parseSignatureHeader(req.Header.Get("Signature"))
	if verr != nil {
		return verr
	}
	for _, name := range requiredSignatureFields {
		if _, ok := fields[name]; !ok {
			return unauthorized("Missing field in Signature header: %s", name)
		}
	}

	publicKey, err := v.keys.ResolveKey(ctx, fields["keyId"])
	if err != nil || publicKey == nil {
		return unauthorized("No available key for actor %s", fields["keyId"])
	}

	signingString, verr := buildSigningString(local, req, fields["headers"])
	if verr != nil {
		return verr
	}

	if !verifyString(signingString, fields["signature"], publicKey) {
		return forbidden("Invalid signature")
	}
	return nil
}

// parseSignatureHeader splits `keyId="...",headers="...",signature="..."`
// into its fields. Every value must be wrapped in double quotes.
func parseSignatureHeader(header string) (map[string]string, *VerificationError) {
	fields := make(map[string]string)
	for _, field := range strings.Split(header, ",") {
		item := strings.SplitN(field, "=", 2)
		if len(item) != 2 || len(item[1]) < 2 ||
			!strings.HasPrefix(item[1], `"`) || !strings.HasSuffix(item[1], `"`) {
			return nil, unauthorized("Invalid field in Signature Header: %s", header)
		}
		fields[item[0]] = item[1][1 : len(item[1])-1]
	}
	return fields, nil
}

// buildSigningString reconstructs the canonical string using only the header
// names the signer declared, in the order declared.
func buildSigningString(local *instance.Instance, req *Request, declared string) (string, *VerificationError) {
	var lines []string
	for _, name := range strings.Split(declared, " ") {
		switch name {
		case "(request-target)":
			lines = append(lines, "(request-target): "+strings.ToLower(req.Method)+" "+req.Path)
		case "digest":
			lines = append(lines, "digest: "+req.Header.Get("Digest"))
		case "host":
			lines = append(lines, "host: "+local.Hostname)
		case "date":
			lines = append(lines, "date: "+req.Header.Get("Date"))
		case "content-type":
			lines = append(lines, "content-type: "+req.ContentType)
		default:
			return "", unauthorized("Invalid header name in field headers of Signature header: %s", name)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func verifyString(value, signature string, key *rsa.PublicKey) bool {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	hashed := sha256.Sum256([]byte(value))
	return rsa.VerifyPKCS1v15(key, crypto.SHA256, hashed[:], raw) == nil
}
