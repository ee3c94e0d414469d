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

package signer

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/phant-project/phant-go/pkg/actor"
	"github.com/phant-project/phant-go/pkg/instance"
)

// DefaultSigner implements HTTPSigner with RSASSA-PKCS1-v1_5 over SHA-256.
type DefaultSigner struct{}

// NewDefaultSigner creates a new DefaultSigner.
func NewDefaultSigner() *DefaultSigner {
	return &DefaultSigner{}
}

// Sign builds the canonical signing string for the request and signs it
// with the sender's private key.
//
// The canonical string is newline-joined, lowercase field names, in this
// exact order:
//
//	(request-target): {method, lowercased} {target path}
//	digest: sha-256={base64 SHA-256 of body}
//	host: {target hostname}
//	date: {RFC 1123 GMT date}
func (s *DefaultSigner) Sign(method, targetURL string, sender *actor.Actor, body []byte, date time.Time) (http.Header, error) {
	if sender.PrivateKey == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPrivateKey, sender.FullHandle())
	}

	target, err := instance.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL %q: %w", targetURL, err)
	}

	if date.IsZero() {
		date = time.Now()
	}
	dateStr := HTTPDate(date)
	digest := Digest(body)

	signingString := strings.Join([]string{
		fmt.Sprintf("(request-target): %s %s", strings.ToLower(method), target.Path),
		"digest: " + digest,
		"host: " + target.Hostname,
		"date: " + dateStr,
	}, "\n")

	signature, err := signString(signingString, sender.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	headers := make(http.Header)
	headers.Set("Digest", digest)
	headers.Set("Host", target.Hostname)
	headers.Set("Date", dateStr)
	headers.Set("Signature", fmt.Sprintf(
		`keyId="%s",headers="%s",signature="%s"`,
		sender.PublicKeyID, SignedHeaderList, signature,
	))
	return headers, nil
}

func signString(value string, key *rsa.PrivateKey) (string, error) {
	hashed := sha256.Sum256([]byte(value))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, hashed[:])
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}
