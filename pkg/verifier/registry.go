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
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrKeyConflict is returned when a key id already bound to material is
	// re-registered with different material.
	ErrKeyConflict = errors.New("key already registered with different material")

	// ErrKeyNotFound is returned when a key id has no registry entry.
	ErrKeyNotFound = errors.New("no key registered")
)

// KeyRegistry maps public key ids (actor URLs) to imported key material for
// the actors this node knows about.
//
// Registration is first-writer-wins: re-registering identical material is an
// idempotent success, late-binding material onto a nil entry succeeds, and
// conflicting material is rejected. The lock covers the whole
// check-then-set so concurrent registrations for the same id cannot both
// win.
type KeyRegistry struct {
	mu   sync.Mutex
	keys map[string]*rsa.PublicKey
}

// NewKeyRegistry creates an empty registry.
func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{keys: make(map[string]*rsa.PublicKey)}
}

// Register binds a key id to public key material. A nil key reserves the id
// for late binding.
func (r *KeyRegistry) Register(keyID string, key *rsa.PublicKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.keys[keyID]
	switch {
	case !ok, existing == nil:
		r.keys[keyID] = key
		return nil
	case key != nil && existing.Equal(key):
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrKeyConflict, keyID)
	}
}

// Lookup returns the key bound to keyID. The key may be nil for
// late-binding entries that have no material yet.
func (r *KeyRegistry) Lookup(keyID string) (*rsa.PublicKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.keys[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, keyID)
	}
	return key, nil
}

// Contains reports whether keyID has a registry entry, with or without
// material.
func (r *KeyRegistry) Contains(keyID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.keys[keyID]
	return ok
}

// ResolveKey implements KeyResolver over the registry. Entries without
// material resolve as not found: a reserved id cannot verify anything.
func (r *KeyRegistry) ResolveKey(_ context.Context, keyID string) (*rsa.PublicKey, error) {
	key, err := r.Lookup(keyID)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, fmt.Errorf("%w: %s has no key material", ErrKeyNotFound, keyID)
	}
	return key, nil
}
