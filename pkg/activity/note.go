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

// Note is the ActivityStreams Note object, with the full Mastodon-compatible
// field set. Nullable fields are pointers so absent values serialize as
// JSON null, matching what federated peers emit.
type Note struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Summary          *string           `json:"summary"`
	InReplyTo        *string           `json:"inReplyTo"`
	Published        string            `json:"published"`
	URL              string            `json:"url"`
	AttributedTo     string            `json:"attributedTo"`
	To               []string          `json:"to"`
	CC               []string          `json:"cc"`
	Sensitive        bool              `json:"sensitive"`
	AtomURI          string            `json:"atomUri"`
	InReplyToAtomURI *string           `json:"inReplyToAtomUri"`
	Conversation     string            `json:"conversation"`
	Content          string            `json:"content"`
	ContentMap       map[string]string `json:"contentMap"`
	Attachment       []any             `json:"attachment"`
	Tag              []Tag             `json:"tag"`
	Replies          Replies           `json:"replies"`
}

// Tag marks up entities referenced by a note, e.g. the Mention of its
// recipient.
type Tag struct {
	Type string `json:"type"`
	Href string `json:"href"`
	Name string `json:"name"`
}

// Replies is the (empty) reply collection a fresh note advertises.
type Replies struct {
	ID    string     `json:"id"`
	Type  string     `json:"type"`
	First RepliesPage `json:"first"`
}

// RepliesPage is the first page of a reply collection.
type RepliesPage struct {
	Type   string `json:"type"`
	Next   string `json:"next"`
	PartOf string `json:"partOf"`
	Items  []any  `json:"items"`
}

// NoteOptions carries the optional note fields.
type NoteOptions struct {
	Summary          *string
	InReplyTo        *string
	InReplyToAtomURI *string
	Sensitive        bool
}

// NewNote builds a Note from sender to recipient. The note id and its
// conversation tag share one random token, both scoped to the sender's id
// space. A zero date means now.
func NewNote(content string, sender, recipient *actor.Actor, date time.Time, opts NoteOptions) *Note {
	if date.IsZero() {
		date = time.Now()
	}
	token := uuid.New().ID()
	id := IDFromToken(sender, token)

	return &Note{
		ID:               id,
		Type:             "Note",
		Summary:          opts.Summary,
		InReplyTo:        opts.InReplyTo,
		Published:        date.UTC().Format(PublishedFormat),
		URL:              id,
		AttributedTo:     sender.ID,
		To:               []string{recipient.ID},
		CC:               []string{},
		Sensitive:        opts.Sensitive,
		AtomURI:          id,
		InReplyToAtomURI: opts.InReplyToAtomURI,
		Conversation: fmt.Sprintf("tag:%s,%s:objectId=%d:objectType=Conversation",
			sender.Instance, date.UTC().Format("2006-01-02"), token),
		Content:    content,
		ContentMap: map[string]string{},
		Attachment: []any{},
		Tag: []Tag{{
			Type: "Mention",
			Href: recipient.ID,
			Name: recipient.FullHandle(),
		}},
		Replies: Replies{
			ID:   id,
			Type: "Collection",
			First: RepliesPage{
				Type:   "CollectionPage",
				Next:   id,
				PartOf: id,
				Items:  []any{},
			},
		},
	}
}
