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

package mailbox

import "sync"

// DefaultMaxPerUser bounds each user's box. Enqueueing beyond the bound
// evicts the oldest entry rather than rejecting the delivery, so a remote
// peer cannot probe a user's backlog depth.
const DefaultMaxPerUser = 1024

// Mailbox holds per-user queues of delivered mail in arrival order.
//
// Boxes for different users never contend: each user gets an independently
// locked box, created on first use. Drain is take-semantics: the entries it
// returns are removed in the same critical section, so two concurrent
// drains can never both receive the same entry.
type Mailbox struct {
	boxes      sync.Map // username -> *box
	maxPerUser int
}

type box struct {
	mu   sync.Mutex
	mail []*Mail
}

// New creates a mailbox with the default per-user bound.
func New() *Mailbox {
	return NewWithCapacity(DefaultMaxPerUser)
}

// NewWithCapacity creates a mailbox bounding each user's box at maxPerUser
// entries. A non-positive capacity means unbounded.
func NewWithCapacity(maxPerUser int) *Mailbox {
	return &Mailbox{maxPerUser: maxPerUser}
}

// Enqueue appends mail to the user's box. It reports whether an old entry
// was evicted to stay within the per-user bound.
func (m *Mailbox) Enqueue(username string, mail *Mail) bool {
	b := m.box(username)
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mail = append(b.mail, mail)
	if m.maxPerUser > 0 && len(b.mail) > m.maxPerUser {
		b.mail = b.mail[1:]
		return true
	}
	return false
}

// Drain atomically takes everything in the user's box and leaves it empty.
// Entries enqueued strictly before the call are always included; entries
// racing with the call land in either this drain or the next one, never
// both.
func (m *Mailbox) Drain(username string) []*Mail {
	b := m.box(username)
	b.mu.Lock()
	defer b.mu.Unlock()

	drained := b.mail
	b.mail = nil
	return drained
}

// Len reports the number of queued entries for a user.
func (m *Mailbox) Len(username string) int {
	b := m.box(username)
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.mail)
}

func (m *Mailbox) box(username string) *box {
	if b, ok := m.boxes.Load(username); ok {
		return b.(*box)
	}
	b, _ := m.boxes.LoadOrStore(username, &box{})
	return b.(*box)
}
