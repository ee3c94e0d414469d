// Package mailbox implements the per-actor inbox: verified deliveries
// accumulate in arrival order until a reader drains them.
//
// Drain is atomic read-and-clear. Concurrent drains of the same user split
// the queue between them without duplication or loss; operations on
// different users never block each other.
package mailbox
