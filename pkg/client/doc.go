// Package client is the sending half of federation: it registers local
// actors with their home instance, signs and delivers activities to remote
// inboxes, and drains the actor's own mailbox.
//
// # Delivering a note
//
//	c := client.New(nil)
//	me, err := c.Register(ctx, "alice", "https://a.example", "alice.pem", "alice.pub")
//	if err != nil {
//	    return err
//	}
//	them, err := c.Resolver().ResolveHandle(ctx, "bob@b.example", "", nil)
//	if err != nil {
//	    return err
//	}
//	err = c.PostNote(ctx, "hello", me, them, time.Time{}, activity.NoteOptions{})
//
// # Reading mail
//
// GetInbox issues a signed drain against the actor's client inbox. The
// instance returns the raw delivered requests; the client re-runs signature
// verification on every entry (resolving sender keys via their keyId URLs)
// and surfaces only the contents that validate.
//
// Delivery reports success only on 2xx responses; any other status is a
// DeliveryError carrying the status and response body. No retry or backoff
// is attempted here.
package client
