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
	"crypto/rsa"
	"fmt"
	"net/http"

	"github.com/phant-project/phant-go/pkg/instance"
)

// RequestVerifier checks the signature of an inbound request against the
// local instance identity and a key resolution strategy.
type RequestVerifier interface {
	// Verify returns nil when the request is authentic, otherwise a
	// VerificationError describing the first failed check.
	Verify(ctx context.Context, local *instance.Instance, req *Request) *VerificationError
}

// KeyResolver turns a signature keyId into public key material. The server
// resolves against its registry; clients may resolve by fetching the actor
// document at the keyId URL.
type KeyResolver interface {
	ResolveKey(ctx context.Context, keyID string) (*rsa.PublicKey, error)
}

// VerificationError carries the rejection reason and the HTTP status it
// maps to: 401 for malformed or untrusted metadata, 403 for a well-formed
// request whose signature does not validate.
type VerificationError struct {
	Reason string
	Status int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Reason, e.Status)
}

func unauthorized(format string, args ...any) *VerificationError {
	return &VerificationError{Reason: fmt.Sprintf(format, args...), Status: http.StatusUnauthorized}
}

func forbidden(reason string) *VerificationError {
	return &VerificationError{Reason: reason, Status: http.StatusForbidden}
}
