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
	"crypto/rsa"
	"fmt"

	"github.com/phant-project/phant-go/pkg/instance"
	"github.com/phant-project/phant-go/pkg/keys"
)

// Actor is a federated identity, locally hosted or remote.
//
// A local actor built with Local carries its private key and a ClientInbox,
// the URL it fetches its own queued mail from. A remote actor resolved over
// the network carries only the advertised public key material.
type Actor struct {
	Username string
	Instance *instance.Instance

	// ID is the canonical actor URL, e.g. "https://a.example/users/alice".
	ID string

	// Inbox is the publicly advertised delivery URL.
	Inbox string

	// ClientInbox is the URL this node reads its own mail from. Only set
	// for actors that hold a private key.
	ClientInbox string

	PublicKeyID  string
	PublicKeyPEM string
	PublicKey    *rsa.PublicKey
	PrivateKey   *rsa.PrivateKey
}

// FullHandle derives the "@user@host" form. It is never stored, so it cannot
// desync from Username and Instance.
func (a *Actor) FullHandle() string {
	return fmt.Sprintf("@%s@%s", a.Username, a.Instance.Hostname)
}

// Local constructs an actor from configuration and key files, without any
// network call. The actor URL, inbox and key id follow the canonical
// "{instance}/users/{user}" layout.
//
// instanceAddr may be empty when the handle itself names the instance
// ("user@host"). Key paths may be empty: the resulting actor then has no
// private key (cannot sign) or no public key material (anonymous).
func Local(handle, instanceAddr, privateKeyPath, publicKeyPath string) (*Actor, error) {
	username, inst, err := ParseHandle(handle, instanceAddr, "", instance.DefaultScheme)
	if err != nil {
		return nil, err
	}

	privateKey, err := keys.LoadPrivate(privateKeyPath)
	if err != nil {
		return nil, err
	}
	publicKeyPEM, err := keys.LoadPublicPEM(publicKeyPath)
	if err != nil {
		return nil, err
	}
	publicKey, err := keys.ImportPublic(publicKeyPEM)
	if err != nil {
		return nil, err
	}

	id := fmt.Sprintf("%s/users/%s", inst, username)
	a := &Actor{
		Username:     username,
		Instance:     inst,
		ID:           id,
		Inbox:        id + "/inbox",
		PublicKeyID:  id,
		PublicKeyPEM: publicKeyPEM,
		PublicKey:    publicKey,
		PrivateKey:   privateKey,
	}
	if privateKey != nil {
		a.ClientInbox = a.Inbox
	}
	return a, nil
}

// FromDocument constructs an actor from a fetched actor document,
// optionally attaching a private key for local signing use.
func FromDocument(doc *Document, privateKey *rsa.PrivateKey) (*Actor, error) {
	inst, err := instance.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id %q: %w", doc.ID, err)
	}
	inst.Path = "/"

	publicKey, err := keys.ImportPublic(doc.PublicKey.PublicKeyPem)
	if err != nil {
		return nil, fmt.Errorf("invalid public key for %q: %w", doc.ID, err)
	}

	a := &Actor{
		Username:     doc.PreferredUsername,
		Instance:     inst,
		ID:           doc.ID,
		Inbox:        doc.Inbox,
		PublicKeyID:  doc.PublicKey.ID,
		PublicKeyPEM: doc.PublicKey.PublicKeyPem,
		PublicKey:    publicKey,
		PrivateKey:   privateKey,
	}
	if privateKey != nil {
		a.ClientInbox = fmt.Sprintf("%s/users/%s/inbox", inst, a.Username)
	}
	return a, nil
}

// Document renders the actor as its wire-format profile document.
func (a *Actor) Document() *Document {
	return &Document{
		Context: []any{
			"https://www.w3.org/ns/activitystreams",
			"https://w3id.org/security/v1",
		},
		ID:                a.ID,
		Type:              "Person",
		PreferredUsername: a.Username,
		Inbox:             a.Inbox,
		PublicKey: PublicKeyDocument{
			ID:           a.PublicKeyID,
			Owner:        a.ID,
			PublicKeyPem: a.PublicKeyPEM,
		},
	}
}
