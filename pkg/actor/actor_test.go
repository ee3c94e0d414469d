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

package actor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phant-project/phant-go/pkg/keys"
)

func TestParseHandle_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		handle   string
		explicit string
		wantUser string
		wantHost string
	}{
		{"bare user with explicit instance", "alice", "https://a.example", "alice", "a.example"},
		{"user at host", "alice@a.example", "", "alice", "a.example"},
		{"full handle", "@alice@a.example", "", "alice", "a.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, inst, err := ParseHandle(tt.handle, tt.explicit, "", "https")
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user)
			assert.Equal(t, tt.wantHost, inst.Hostname)
		})
	}
}

func TestParseHandle_DefaultInstance(t *testing.T) {
	user, inst, err := ParseHandle("bob", "", "https://b.example", "https")

	require.NoError(t, err)
	assert.Equal(t, "bob", user)
	assert.Equal(t, "b.example", inst.Hostname)
}

func TestParseHandle_Invalid(t *testing.T) {
	for _, handle := range []string{"a@b@c@d", "@a.example", "", "x@alice@a.example"} {
		_, _, err := ParseHandle(handle, "https://a.example", "", "https")
		assert.ErrorIs(t, err, ErrInvalidHandle, "handle %q", handle)
	}
}

func TestParseHandle_InstanceMismatch(t *testing.T) {
	_, _, err := ParseHandle("alice@a.example", "https://b.example", "", "https")

	assert.ErrorIs(t, err, ErrInstanceMismatch)
}

func TestParseHandle_InstanceAgreement(t *testing.T) {
	// Different literal, same (scheme, host, port).
	user, inst, err := ParseHandle("alice@a.example", "https://a.example/unrelated/path", "", "https")

	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "a.example", inst.Hostname)
}

func TestLocal_CanonicalLayout(t *testing.T) {
	a, err := Local("alice", "https://a.example", "", "")

	require.NoError(t, err)
	assert.Equal(t, "https://a.example/users/alice", a.ID)
	assert.Equal(t, "https://a.example/users/alice/inbox", a.Inbox)
	assert.Equal(t, a.ID, a.PublicKeyID)
	assert.Equal(t, "@alice@a.example", a.FullHandle())
	assert.Nil(t, a.PrivateKey)
	assert.Empty(t, a.ClientInbox)
}

func TestLocal_WithKeys(t *testing.T) {
	dir := t.TempDir()
	privPath := filepath.Join(dir, "alice.pem")
	pubPath := filepath.Join(dir, "alice.pub")
	require.NoError(t, keys.Generate(privPath, pubPath))

	a, err := Local("alice@a.example", "", privPath, pubPath)

	require.NoError(t, err)
	require.NotNil(t, a.PrivateKey)
	require.NotNil(t, a.PublicKey)
	assert.True(t, a.PrivateKey.PublicKey.Equal(a.PublicKey))
	assert.Equal(t, a.Inbox, a.ClientInbox)
	assert.NotEmpty(t, a.PublicKeyPEM)
}

func TestFromDocument(t *testing.T) {
	dir := t.TempDir()
	privPath := filepath.Join(dir, "k.pem")
	pubPath := filepath.Join(dir, "k.pub")
	require.NoError(t, keys.Generate(privPath, pubPath))
	pubPEM, err := keys.LoadPublicPEM(pubPath)
	require.NoError(t, err)

	doc := &Document{
		ID:                "https://a.example/users/alice",
		Type:              "Person",
		PreferredUsername: "alice",
		Inbox:             "https://a.example/users/alice/inbox",
		PublicKey: PublicKeyDocument{
			ID:           "https://a.example/users/alice",
			Owner:        "https://a.example/users/alice",
			PublicKeyPem: pubPEM,
		},
	}

	a, err := FromDocument(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Username)
	assert.Equal(t, "a.example", a.Instance.Hostname)
	assert.Equal(t, "/", a.Instance.Path)
	require.NotNil(t, a.PublicKey)
	assert.Empty(t, a.ClientInbox)
}

func TestFromDocument_WithPrivateKeySetsClientInbox(t *testing.T) {
	dir := t.TempDir()
	privPath := filepath.Join(dir, "k.pem")
	pubPath := filepath.Join(dir, "k.pub")
	require.NoError(t, keys.Generate(privPath, pubPath))
	priv, err := keys.LoadPrivate(privPath)
	require.NoError(t, err)

	doc := &Document{
		ID:                "https://a.example/users/alice",
		PreferredUsername: "alice",
		Inbox:             "https://a.example/users/alice/inbox",
	}

	a, err := FromDocument(doc, priv)
	require.NoError(t, err)
	assert.Equal(t, "https://a.example/users/alice/inbox", a.ClientInbox)
	// Absent public key material stays absent instead of failing.
	assert.Nil(t, a.PublicKey)
}

func TestDocument_RoundTrip(t *testing.T) {
	a, err := Local("alice", "https://a.example", "", "")
	require.NoError(t, err)

	doc := a.Document()
	assert.Equal(t, "Person", doc.Type)
	assert.Equal(t, a.ID, doc.ID)
	assert.Equal(t, a.ID, doc.PublicKey.Owner)

	back, err := FromDocument(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Username, back.Username)
	assert.Equal(t, a.Inbox, back.Inbox)
	assert.True(t, a.Instance.Equal(back.Instance))
}
