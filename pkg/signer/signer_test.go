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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phant-project/phant-go/pkg/actor"
)

func newTestActor(t *testing.T, withKey bool) *actor.Actor {
	t.Helper()
	a, err := actor.Local("alice", "https://a.example", "", "")
	require.NoError(t, err)
	if withKey {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		a.PrivateKey = key
		a.PublicKey = &key.PublicKey
	}
	return a
}

func TestDigest_EmptyBody(t *testing.T) {
	assert.Equal(t, "sha-256=47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU=", Digest(nil))
	assert.Equal(t, Digest(nil), Digest([]byte{}))
}

func TestDigest_Deterministic(t *testing.T) {
	body := []byte(`{"type":"Note"}`)
	assert.Equal(t, Digest(body), Digest(body))
	assert.NotEqual(t, Digest(body), Digest([]byte(`{"type":"Note"} `)))
}

func TestHTTPDate_Format(t *testing.T) {
	date := time.Date(2024, time.March, 5, 12, 30, 45, 0, time.UTC)

	assert.Equal(t, "Tue, 05 Mar 2024 12:30:45 GMT", HTTPDate(date))
}

func TestSign_Headers(t *testing.T) {
	sender := newTestActor(t, true)
	s := NewDefaultSigner()
	body := []byte(`{"hello":"world"}`)
	date := time.Date(2024, time.March, 5, 12, 30, 45, 0, time.UTC)

	headers, err := s.Sign("POST", "https://b.example/users/bob/inbox", sender, body, date)

	require.NoError(t, err)
	assert.Equal(t, Digest(body), headers.Get("Digest"))
	assert.Equal(t, "b.example", headers.Get("Host"))
	assert.Equal(t, "Tue, 05 Mar 2024 12:30:45 GMT", headers.Get("Date"))

	sig := headers.Get("Signature")
	assert.Contains(t, sig, `keyId="https://a.example/users/alice"`)
	assert.Contains(t, sig, `headers="(request-target) digest host date"`)
	assert.Contains(t, sig, `signature="`)
}

func TestSign_SignatureVerifiesAgainstCanonicalString(t *testing.T) {
	sender := newTestActor(t, true)
	s := NewDefaultSigner()
	body := []byte("payload")
	date := time.Date(2024, time.March, 5, 12, 30, 45, 0, time.UTC)

	headers, err := s.Sign("POST", "https://b.example/users/bob/inbox", sender, body, date)
	require.NoError(t, err)

	// Rebuild the canonical string the way a verifier would.
	canonical := strings.Join([]string{
		"(request-target): post /users/bob/inbox",
		"digest: " + headers.Get("Digest"),
		"host: b.example",
		"date: " + headers.Get("Date"),
	}, "\n")

	sigField := headers.Get("Signature")
	start := strings.Index(sigField, `signature="`) + len(`signature="`)
	end := strings.LastIndex(sigField, `"`)
	rawSig, err := base64.StdEncoding.DecodeString(sigField[start:end])
	require.NoError(t, err)

	hashed := sha256.Sum256([]byte(canonical))
	assert.NoError(t, rsa.VerifyPKCS1v15(sender.PublicKey, crypto.SHA256, hashed[:], rawSig))
}

func TestSign_NoPrivateKey(t *testing.T) {
	sender := newTestActor(t, false)
	s := NewDefaultSigner()

	_, err := s.Sign("POST", "https://b.example/users/bob/inbox", sender, nil, time.Time{})

	assert.ErrorIs(t, err, ErrNoPrivateKey)
}

func TestSign_InvalidTargetURL(t *testing.T) {
	sender := newTestActor(t, true)
	s := NewDefaultSigner()

	_, err := s.Sign("POST", "", sender, nil, time.Time{})

	assert.Error(t, err)
}
