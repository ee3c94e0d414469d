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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"go.uber.org/zap"

	phant "github.com/phant-project/phant-go"
	"github.com/phant-project/phant-go/pkg/actor"
	"github.com/phant-project/phant-go/pkg/keys"
	"github.com/phant-project/phant-go/pkg/mailbox"
	"github.com/phant-project/phant-go/pkg/verifier"
)

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(value)
}

// handleWebfinger maps an acct: resource to the local actor URL. Unknown
// users get an empty object, not a 404.
func (s *Service) handleWebfinger(w http.ResponseWriter, r *http.Request) {
	resource := r.URL.Query().Get("resource")

	parts := strings.SplitN(resource, ":", 2)
	if len(parts) != 2 || parts[0] != "acct" {
		http.Error(w, "Invalid resource", http.StatusUnprocessableEntity)
		return
	}
	acct := strings.SplitN(parts[1], "@", 2)
	if len(acct) != 2 {
		http.Error(w, "Invalid resource", http.StatusUnprocessableEntity)
		return
	}

	id := s.actorID(acct[0])
	if !s.registry.Contains(id) {
		writeJSON(w, struct{}{})
		return
	}
	writeJSON(w, actor.WebfingerResponse{
		Subject: resource,
		Links: []actor.WebfingerLink{
			{Rel: "self", Type: "application/activity+json", Href: id},
		},
	})
}

// handleGetUser serves the actor profile: the JSON document when the Accept
// header asks for activity+json, a minimal HTML rendering otherwise.
func (s *Service) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	id := s.actorID(user)

	key, err := s.registry.Lookup(id)
	if err != nil {
		http.Error(w, "User Not Found", http.StatusNotFound)
		return
	}

	publicKeyPEM := ""
	if key != nil {
		if publicKeyPEM, err = keys.ExportPublicPEM(key); err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
	}

	mediaTypes := strings.Split(strings.Split(r.Header.Get("Accept"), ";")[0], ",")
	if slices.Contains(mediaTypes, "application/activity+json") {
		writeJSON(w, actor.Document{
			Context: []any{
				"https://www.w3.org/ns/activitystreams",
				"https://w3id.org/security/v1",
			},
			ID:                id,
			Type:              "Person",
			PreferredUsername: user,
			Inbox:             id + "/inbox",
			PublicKey: actor.PublicKeyDocument{
				ID:           id,
				Owner:        id,
				PublicKeyPem: publicKeyPEM,
			},
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>%s</h1>\n<b>Inbox:</b> %s/inbox<br>\n<b>Public Key:</b><br><pre>%s</pre>",
		user, id, publicKeyPEM)
}

// handleRegisterUser binds a PEM public key to a local username. An empty
// body reserves the name without material; a conflicting key is rejected.
func (s *Service) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid public key", http.StatusUnprocessableEntity)
		return
	}
	key, err := keys.ImportPublic(string(body))
	if err != nil {
		http.Error(w, "Invalid public key", http.StatusUnprocessableEntity)
		return
	}

	if err := s.registry.Register(s.actorID(user), key); err != nil {
		http.Error(w, "User Already Exists", http.StatusConflict)
		return
	}
	s.logger.Info("user registered", zap.String("user", user))
}

// handleExternalKeys registers a remote actor's key from its profile
// document, so later deliveries signed by that actor verify locally.
func (s *Service) handleExternalKeys(w http.ResponseWriter, r *http.Request) {
	var doc actor.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid actor document", http.StatusUnprocessableEntity)
		return
	}
	key, err := keys.ImportPublic(doc.PublicKey.PublicKeyPem)
	if err != nil {
		http.Error(w, "Invalid public key", http.StatusUnprocessableEntity)
		return
	}

	if err := s.registry.Register(doc.PublicKey.ID, key); err != nil {
		http.Error(w, "User Already Exists", http.StatusConflict)
		return
	}
	s.logger.Info("external key registered", zap.String("key_id", doc.PublicKey.ID))
}

func (s *Service) handleInboxGet(w http.ResponseWriter, r *http.Request) {
	entries := s.mailbox.Drain(r.PathValue("user"))
	if entries == nil {
		entries = []*mailbox.Mail{}
	}
	writeJSON(w, entries)
}

// handleInboxPost validates the activity's to field and queues the delivery
// for the addressed local user. The stored entry is the raw request, so
// readers can re-verify the sender's signature themselves.
func (s *Service) handleInboxPost(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid body", http.StatusUnprocessableEntity)
		return
	}

	var activity map[string]any
	if err := json.Unmarshal(body, &activity); err != nil {
		http.Error(w, "Invalid body", http.StatusUnprocessableEntity)
		return
	}

	var recipients []any
	switch to := activity["to"].(type) {
	case nil:
		http.Error(w, "Missing field: to", http.StatusConflict)
		return
	case string:
		recipients = []any{to}
	case []any:
		recipients = to
	default:
		http.Error(w, "Invalid type for field: to", http.StatusConflict)
		return
	}

	// Every recipient must check out before anything is enqueued: a 409
	// response means no mutation happened.
	for _, recipient := range recipients {
		recipientURL, ok := recipient.(string)
		if !ok {
			http.Error(w, "Invalid type for field: to", http.StatusConflict)
			return
		}
		if recipientUser := usernameFromURL(recipientURL); recipientUser != user {
			http.Error(w,
				fmt.Sprintf("Invalid recipient in field to: %s", recipientUser),
				http.StatusConflict)
			return
		}
	}

	mail := mailbox.NewMail(verifier.FromHTTP(r, body))
	for range recipients {
		if s.mailbox.Enqueue(user, mail) {
			s.logger.Warn("mailbox full, oldest entry evicted", zap.String("user", user))
		}
	}
	s.logger.Info("delivered", zap.String("user", user))
}

// usernameFromURL extracts the username from a "/users/{user}" actor URL
// path. Anything else yields an empty string, which never matches a real
// mailbox.
func usernameFromURL(actorURL string) string {
	u, err := url.Parse(actorURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(u.Path, "/")
	if len(segments) < 3 {
		return ""
	}
	return segments[2]
}

func (s *Service) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, `# See http://www.robotstxt.org/robotstxt.html for documentation on how to use the robots.txt file

User-agent: GPTBot
Disallow: /

User-agent: *
Disallow: /media_proxy/
Disallow: /interact/
`)
}

func (s *Service) handleNodeInfoIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"links": []map[string]string{
			{
				"rel":  "http://nodeinfo.diaspora.software/ns/schema/2.0",
				"href": fmt.Sprintf("%s/nodeinfo/2.0", s.instance),
			},
		},
	})
}

func (s *Service) handleNodeInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"version": phant.NodeInfoSchemaVersion,
		"software": map[string]string{
			"name":    phant.SoftwareName,
			"version": phant.Version,
		},
		"protocols": []string{"activitypub"},
		"services": map[string]any{
			"outbound": []string{},
			"inbound":  []string{},
		},
		"openRegistrations": true,
		"metadata": map[string]string{
			"nodeName":        "Phant",
			"nodeDescription": "The sound that phants make",
		},
	})
}

func (s *Service) handleMastodonInstance(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"uri":               s.instance.Hostname,
		"title":             "Phant",
		"short_description": "The sound that phants make",
		"description":       "",
		"version":           phant.Version,
		"languages":         []string{"en", "it"},
		"registrations":     false,
		"approval_required": false,
		"invites_enabled":   false,
		"rules": []map[string]string{
			{"id": "1", "text": "Phants never forget"},
			{"id": "2", "text": "Phants will always search for you"},
			{"id": "3", "text": "Phants won't stop"},
			{"id": "4", "text": "Phant is already behind you"},
			{"id": "7", "text": "You better not turn around"},
		},
	})
}
