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
	"fmt"
)

// FetchKeyResolver implements verifier.KeyResolver by fetching the actor
// document at the keyId URL. Clients use it to verify drained mail from
// senders they never registered locally.
type FetchKeyResolver struct {
	actors *ActorResolver
}

// NewFetchKeyResolver creates a key resolver backed by actor document
// fetches.
func NewFetchKeyResolver(actors *ActorResolver) *FetchKeyResolver {
	return &FetchKeyResolver{actors: actors}
}

// ResolveKey fetches the actor document at keyID and returns its public
// key.
func (f *FetchKeyResolver) ResolveKey(ctx context.Context, keyID string) (*rsa.PublicKey, error) {
	a, err := f.actors.ResolveURL(ctx, keyID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve key %s: %w", keyID, err)
	}
	if a.PublicKey == nil {
		return nil, fmt.Errorf("actor %s advertises no public key", keyID)
	}
	return a.PublicKey, nil
}
