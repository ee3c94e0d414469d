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

// Document is the ActivityPub actor profile document, served at the actor
// URL and consumed when resolving remote actors.
type Document struct {
	Context           any               `json:"@context,omitempty"`
	ID                string            `json:"id"`
	Type              string            `json:"type"`
	PreferredUsername string            `json:"preferredUsername"`
	Inbox             string            `json:"inbox"`
	PublicKey         PublicKeyDocument `json:"publicKey"`
}

// PublicKeyDocument advertises an actor's signing key.
type PublicKeyDocument struct {
	ID           string `json:"id"`
	Owner        string `json:"owner,omitempty"`
	PublicKeyPem string `json:"publicKeyPem"`
}

// WebfingerResponse is the discovery document mapping an acct: resource to
// an actor URL.
type WebfingerResponse struct {
	Subject string          `json:"subject,omitempty"`
	Links   []WebfingerLink `json:"links,omitempty"`
}

// WebfingerLink is a single link entry; resolution follows the entry with
// Rel == "self".
type WebfingerLink struct {
	Rel  string `json:"rel"`
	Type string `json:"type,omitempty"`
	Href string `json:"href"`
}
