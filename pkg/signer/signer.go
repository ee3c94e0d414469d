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
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/phant-project/phant-go/pkg/actor"
)

// SignedHeaderList is the header set every outbound signature covers, in
// canonical order.
const SignedHeaderList = "(request-target) digest host date"

// ErrNoPrivateKey is returned when the sender identity carries no private
// key.
var ErrNoPrivateKey = errors.New("sender has no private key")

// HTTPSigner builds the authentication headers for an outbound request.
type HTTPSigner interface {
	// Sign computes the body digest and request signature for the sender,
	// returning the Digest, Host, Date and Signature headers to attach.
	// A zero date means the current UTC time.
	Sign(method, targetURL string, sender *actor.Actor, body []byte, date time.Time) (http.Header, error)
}

// Digest computes the Digest header value for a request body:
// "sha-256=" followed by the base64 SHA-256 of the raw bytes.
func Digest(body []byte) string {
	sum := sha256.Sum256(body)
	return "sha-256=" + base64.StdEncoding.EncodeToString(sum[:])
}

// HTTPDate renders a timestamp in the RFC 1123 GMT form used by the Date
// header and the canonical string.
func HTTPDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}
