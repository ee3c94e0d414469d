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

package client

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phant-project/phant-go/pkg/activity"
	"github.com/phant-project/phant-go/pkg/actor"
	"github.com/phant-project/phant-go/pkg/instance"
	"github.com/phant-project/phant-go/pkg/keys"
	"github.com/phant-project/phant-go/pkg/mailbox"
	"github.com/phant-project/phant-go/pkg/signer"
	"github.com/phant-project/phant-go/pkg/verifier"
)

// newTestActor builds a fully keyed actor on the given base URL without
// touching the filesystem. 2048-bit keys keep the tests fast.
func newTestActor(t *testing.T, username, baseURL string) *actor.Actor {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pubPEM, err := keys.ExportPublicPEM(&key.PublicKey)
	require.NoError(t, err)

	inst, err := instance.Parse(baseURL)
	require.NoError(t, err)

	id := fmt.Sprintf("%s/users/%s", inst, username)
	return &actor.Actor{
		Username:     username,
		Instance:     inst,
		ID:           id,
		Inbox:        id + "/inbox",
		ClientInbox:  id + "/inbox",
		PublicKeyID:  id,
		PublicKeyPEM: pubPEM,
		PublicKey:    &key.PublicKey,
		PrivateKey:   key,
	}
}

func writeKeyFiles(t *testing.T, key *rsa.PrivateKey) (string, string) {
	t.Helper()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "key.pem")
	pubPath := filepath.Join(dir, "key.pub")

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	pubPEM, err := keys.ExportPublicPEM(&key.PublicKey)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(pubPath, []byte(pubPEM), 0o644))

	return privPath, pubPath
}

func serveDocument(a *actor.Actor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/activity+json")
		json.NewEncoder(w).Encode(a.Document())
	}
}

func TestRegister(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privPath, pubPath := writeKeyFiles(t, key)

	var registered string
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	alice := newTestActor(t, "alice", server.URL)
	alice.PrivateKey = key
	alice.PublicKey = &key.PublicKey
	pubPEM, err := keys.ExportPublicPEM(&key.PublicKey)
	require.NoError(t, err)
	alice.PublicKeyPEM = pubPEM

	mux.HandleFunc("POST /users/alice", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		registered = string(body)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /users/alice", serveDocument(alice))

	c := New(server.Client())
	got, err := c.Register(context.Background(), "alice", server.URL, privPath, pubPath)
	require.NoError(t, err)

	assert.Equal(t, pubPEM, registered)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.NotNil(t, got.PrivateKey)
	assert.Equal(t, alice.ID+"/inbox", got.ClientInbox)
}

func TestRegister_Conflict(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privPath, pubPath := writeKeyFiles(t, key)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "User Already Exists", http.StatusConflict)
	}))
	defer server.Close()

	c := New(server.Client())
	_, err = c.Register(context.Background(), "alice", server.URL, privPath, pubPath)

	var derr *DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, http.StatusConflict, derr.Status)
}

func TestDeliver(t *testing.T) {
	var (
		gotSignature   string
		gotContentType string
		gotBody        []byte
	)
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	alice := newTestActor(t, "alice", server.URL)
	bob := newTestActor(t, "bob", server.URL)

	mux.HandleFunc("POST /users/alice/inbox", func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("Signature")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	c := New(server.Client())
	payload := map[string]string{"type": "Create"}
	require.NoError(t, c.Deliver(context.Background(), payload, bob, alice, time.Time{}))

	assert.Contains(t, gotSignature, `keyId="`+bob.PublicKeyID+`"`)
	assert.Equal(t, "application/activity+json", gotContentType)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestDeliver_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusBadGateway)
	}))
	defer server.Close()

	alice := newTestActor(t, "alice", server.URL)
	bob := newTestActor(t, "bob", server.URL)

	err := New(server.Client()).Deliver(context.Background(), map[string]string{}, bob, alice, time.Time{})

	var derr *DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, http.StatusBadGateway, derr.Status)
}

func TestDeliver_NoPrivateKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	alice := newTestActor(t, "alice", server.URL)
	bob := newTestActor(t, "bob", server.URL)
	bob.PrivateKey = nil

	err := New(server.Client()).Deliver(context.Background(), map[string]string{}, bob, alice, time.Time{})
	assert.ErrorIs(t, err, signer.ErrNoPrivateKey)
}

// deliveredMail signs a delivery from sender to the recipient inbox and
// captures it as the instance would have stored it.
func deliveredMail(t *testing.T, sender, recipient *actor.Actor, body []byte) *mailbox.Mail {
	t.Helper()

	headers, err := signer.NewDefaultSigner().Sign(http.MethodPost, recipient.Inbox, sender, body, time.Time{})
	require.NoError(t, err)

	target, err := instance.Parse(recipient.Inbox)
	require.NoError(t, err)

	return mailbox.NewMail(&verifier.Request{
		Method:      http.MethodPost,
		Path:        target.Path,
		Header:      headers,
		ContentType: "application/activity+json",
		Body:        body,
	})
}

func TestGetInbox_DropsInvalidEntries(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	alice := newTestActor(t, "alice", server.URL)
	bob := newTestActor(t, "bob", server.URL)

	valid := deliveredMail(t, bob, alice, []byte(`{"type":"Create","actor":"`+bob.ID+`"}`))
	tampered := deliveredMail(t, bob, alice, []byte(`{"type":"Create","actor":"mallory"}`))
	tampered.DataArray[0] = int('X')

	var inboxSignature string
	mux.HandleFunc("GET /users/bob", serveDocument(bob))
	mux.HandleFunc("GET /users/alice/inbox", func(w http.ResponseWriter, r *http.Request) {
		inboxSignature = r.Header.Get("Signature")
		json.NewEncoder(w).Encode([]*mailbox.Mail{valid, tampered})
	})

	contents, err := New(server.Client()).GetInbox(context.Background(), alice)
	require.NoError(t, err)

	// The drain itself must be signed by the reading actor.
	assert.Contains(t, inboxSignature, `keyId="`+alice.PublicKeyID+`"`)

	require.Len(t, contents, 1)
	assert.Equal(t, "Create", contents[0]["type"])
	assert.Equal(t, bob.ID, contents[0]["actor"])
}

func TestGetInbox_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid signature", http.StatusForbidden)
	}))
	defer server.Close()

	alice := newTestActor(t, "alice", server.URL)

	_, err := New(server.Client()).GetInbox(context.Background(), alice)

	var derr *DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, http.StatusForbidden, derr.Status)
}

func TestWaitInbox(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	alice := newTestActor(t, "alice", server.URL)
	bob := newTestActor(t, "bob", server.URL)
	mail := deliveredMail(t, bob, alice, []byte(`{"type":"Create"}`))

	var polls atomic.Int32
	mux.HandleFunc("GET /users/bob", serveDocument(bob))
	mux.HandleFunc("GET /users/alice/inbox", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) < 3 {
			fmt.Fprint(w, "[]")
			return
		}
		json.NewEncoder(w).Encode([]*mailbox.Mail{mail})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	contents, err := New(server.Client()).WaitInbox(ctx, alice, 5*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestWaitInbox_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	alice := newTestActor(t, "alice", server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(server.Client()).WaitInbox(ctx, alice, 5*time.Millisecond)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPostNote_DeliversCreateEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	alice := newTestActor(t, "alice", server.URL)
	bob := newTestActor(t, "bob", server.URL)

	var gotBody []byte
	mux.HandleFunc("POST /users/alice/inbox", func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	c := New(server.Client())
	require.NoError(t, c.PostNote(context.Background(), "hello", bob, alice, time.Time{}, activity.NoteOptions{}))

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &envelope))
	assert.Equal(t, "Create", envelope["type"])
	assert.Equal(t, bob.ID, envelope["actor"])

	object, ok := envelope["object"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Note", object["type"])
	assert.Equal(t, "hello", object["content"])
}
