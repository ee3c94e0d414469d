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

package resolver

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/phant-project/phant-go/pkg/actor"
	"github.com/phant-project/phant-go/pkg/instance"
)

// ErrActorNotFound is returned when discovery yields no self link or the
// actor document fetch does not succeed.
var ErrActorNotFound = errors.New("actor not found")

// ActorResolver turns handles and actor URLs into resolved identities via
// webfinger discovery and actor profile fetches.
type ActorResolver struct {
	// DefaultInstance is used for bare "user" handles that name no host.
	DefaultInstance string

	httpClient *http.Client
}

// New creates a resolver. If httpClient is nil, http.DefaultClient is used;
// transport timeouts belong to the injected client.
func New(httpClient *http.Client) *ActorResolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ActorResolver{httpClient: httpClient}
}

// ResolveHandle resolves "user", "user@host" or "@user@host" to an identity
// through the two-step discovery protocol: webfinger to find the actor URL,
// then the actor document fetch. The optional privateKey is attached to the
// resolved identity for local signing use.
func (r *ActorResolver) ResolveHandle(ctx context.Context, handle, explicitInstance string, privateKey *rsa.PrivateKey) (*actor.Actor, error) {
	username, inst, err := actor.ParseHandle(handle, explicitInstance, r.DefaultInstance, instance.DefaultScheme)
	if err != nil {
		return nil, err
	}

	webfingerURL := fmt.Sprintf("%s/.well-known/webfinger?resource=%s",
		inst, url.QueryEscape(fmt.Sprintf("acct:%s@%s", username, inst.Hostname)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, webfingerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create webfinger request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webfinger request failed: %w", err)
	}
	defer resp.Body.Close()

	var wf actor.WebfingerResponse
	if err := json.NewDecoder(resp.Body).Decode(&wf); err != nil {
		return nil, fmt.Errorf("failed to decode webfinger response: %w", err)
	}

	actorURL := ""
	for _, link := range wf.Links {
		if link.Rel == "self" {
			actorURL = link.Href
			break
		}
	}
	if actorURL == "" {
		return nil, fmt.Errorf("%w: no self link for %s", ErrActorNotFound, handle)
	}

	return r.ResolveURL(ctx, actorURL, privateKey)
}

// ResolveURL fetches the actor document directly, skipping discovery. Used
// when a keyId or inbox reference is already a concrete URL.
func (r *ActorResolver) ResolveURL(ctx context.Context, actorURL string, privateKey *rsa.PrivateKey) (*actor.Actor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, actorURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create actor request: %w", err)
	}
	req.Header.Set("Accept", "application/activity+json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("actor fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrActorNotFound, actorURL, resp.StatusCode)
	}

	var doc actor.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode actor document: %w", err)
	}

	return actor.FromDocument(&doc, privateKey)
}
