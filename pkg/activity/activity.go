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

package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phant-project/phant-go/pkg/actor"
)

// ContextURL is the ActivityStreams vocabulary context.
const ContextURL = "https://www.w3.org/ns/activitystreams"

// PublishedFormat renders timestamps for the published field.
const PublishedFormat = "2006-01-02T15:04:05Z"

// createContext is the extended @context a Create envelope carries for
// Mastodon interoperability. Field-for-field wire compatibility matters
// here; do not prune entries.
var createContext = []any{
	ContextURL,
	map[string]string{
		"ostatus":          "http://ostatus.org#",
		"atomUri":          "ostatus:atomUri",
		"inReplyToAtomUri": "ostatus:inReplyToAtomUri",
		"conversation":     "ostatus:conversation",
		"sensitive":        "as:sensitive",
		"toot":             "http://joinmastodon.org/ns#",
		"votersCount":      "toot:votersCount",
	},
}

// Activity is the generic activity envelope; Create deliveries wrap their
// object in one.
type Activity struct {
	Context   any      `json:"@context"`
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Actor     string   `json:"actor"`
	Published string   `json:"published,omitempty"`
	To        []string `json:"to,omitempty"`
	CC        []string `json:"cc,omitempty"`
	Object    any      `json:"object,omitempty"`
}

// Follow requests a follow relationship with the object actor.
type Follow struct {
	Context string `json:"@context"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Actor   string `json:"actor"`
	Object  string `json:"object"`
}

// NewFollow builds a Follow activity from the sender toward the object
// actor URL.
func NewFollow(sender *actor.Actor, objectURL string) *Follow {
	return &Follow{
		Context: ContextURL,
		ID:      GenerateID(sender),
		Type:    "Follow",
		Actor:   sender.ID,
		Object:  objectURL,
	}
}

// NewCreate wraps an object in a Create envelope addressed to the
// recipient. A zero date means now.
func NewCreate(object any, sender, recipient *actor.Actor, date time.Time) *Activity {
	if date.IsZero() {
		date = time.Now()
	}
	return &Activity{
		Context:   createContext,
		ID:        GenerateID(sender),
		Type:      "Create",
		Actor:     sender.ID,
		Published: date.UTC().Format(PublishedFormat),
		To:        []string{recipient.ID},
		CC:        []string{},
		Object:    object,
	}
}

// GenerateID produces a fresh activity id in the sender's id space:
// "{actor.id}/{token}". Tokens only need to be unique per sender.
func GenerateID(a *actor.Actor) string {
	return IDFromToken(a, uuid.New().ID())
}

// IDFromToken derives the id for a known token, letting a note and its
// conversation share one.
func IDFromToken(a *actor.Actor, token uint32) string {
	return fmt.Sprintf("%s/%d", a.ID, token)
}
