// Package server is the receiving half of federation: the HTTP surface a
// node exposes to remote peers and to its own local clients.
//
// A Service owns all per-node state (key registry, mailbox, verifier) and
// turns it into a route table:
//
//	GET  /.well-known/webfinger     actor discovery
//	GET  /users/{user}              actor profile (JSON or HTML)
//	POST /users/{user}              public key registration
//	POST /external_keys             remote key registration
//	GET  /users/{user}/inbox        signed mailbox drain
//	POST /users/{user}/inbox        signed activity delivery
//	GET  /.well-known/nodeinfo      nodeinfo discovery
//	GET  /nodeinfo/2.0              nodeinfo document
//	GET  /api/v1/instance           mastodon-compatible instance metadata
//	GET  /robots.txt                crawler policy
//
// Everything else answers 501.
//
// Inbox routes are wrapped in the signature middleware: the request body is
// buffered, the signature verified against the service's key registry, and
// only authentic requests reach the handler. Rejections carry the
// verifier's reason string and its 401/403 status.
//
//	inst, _ := instance.Parse("https://a.example")
//	svc := server.NewService(inst, logger)
//	http.ListenAndServe(":8080", svc.Handler())
package server
