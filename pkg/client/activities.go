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
	"time"

	"github.com/phant-project/phant-go/pkg/activity"
	"github.com/phant-project/phant-go/pkg/actor"
)

// PostCreate wraps an object in a Create envelope and delivers it.
func (c *Client) PostCreate(ctx context.Context, object any, sender, recipient *actor.Actor, date time.Time) error {
	return c.Deliver(ctx, activity.NewCreate(object, sender, recipient, date), sender, recipient, date)
}

// PostNote builds a Note activity and delivers it wrapped in a Create.
func (c *Client) PostNote(ctx context.Context, content string, sender, recipient *actor.Actor, date time.Time, opts activity.NoteOptions) error {
	return c.PostCreate(ctx, activity.NewNote(content, sender, recipient, date, opts), sender, recipient, date)
}

// PostFollow delivers a Follow request for the recipient actor.
func (c *Client) PostFollow(ctx context.Context, sender, recipient *actor.Actor) error {
	return c.Deliver(ctx, activity.NewFollow(sender, recipient.ID), sender, recipient, time.Time{})
}
