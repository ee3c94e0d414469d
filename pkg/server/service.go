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

package server

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phant-project/phant-go/pkg/instance"
	"github.com/phant-project/phant-go/pkg/mailbox"
	"github.com/phant-project/phant-go/pkg/verifier"
)

// Service is one federated instance: it owns the key registry, the mailbox
// and the verifier, and serves the HTTP surface peers and local clients
// talk to. All state is scoped to the Service value; two Services in one
// process are fully independent.
type Service struct {
	instance *instance.Instance
	registry *verifier.KeyRegistry
	mailbox  *mailbox.Mailbox
	verifier verifier.RequestVerifier
	logger   *zap.Logger
}

// NewService creates a service for the given instance identity. Inbound
// signatures are verified against the service's own key registry. A nil
// logger disables logging.
func NewService(inst *instance.Instance, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := verifier.NewKeyRegistry()
	return &Service{
		instance: inst,
		registry: registry,
		mailbox:  mailbox.New(),
		verifier: verifier.NewDefaultVerifier(registry),
		logger:   logger,
	}
}

// Instance returns the identity this service answers for.
func (s *Service) Instance() *instance.Instance {
	return s.instance
}

// Registry exposes the key registry, for preloading keys at startup.
func (s *Service) Registry() *verifier.KeyRegistry {
	return s.registry
}

// Mailbox exposes the mailbox, for in-process readers.
func (s *Service) Mailbox() *mailbox.Mailbox {
	return s.mailbox
}

// actorID is the canonical actor URL for a local username.
func (s *Service) actorID(user string) string {
	return fmt.Sprintf("%s/users/%s", s.instance, user)
}
