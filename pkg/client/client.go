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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/phant-project/phant-go/pkg/actor"
	"github.com/phant-project/phant-go/pkg/keys"
	"github.com/phant-project/phant-go/pkg/mailbox"
	"github.com/phant-project/phant-go/pkg/resolver"
	"github.com/phant-project/phant-go/pkg/signer"
	"github.com/phant-project/phant-go/pkg/verifier"
)

// DeliveryError reports a non-2xx response to an outbound request.
type DeliveryError struct {
	Status int
	Body   string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed with status %d: %s", e.Status, e.Body)
}

// Client registers actors, delivers signed activities and reads signed
// inboxes. All outbound traffic is signed with the sender's key; all
// drained mail is re-verified locally before its content is trusted.
type Client struct {
	signer     signer.HTTPSigner
	verifier   verifier.RequestVerifier
	resolver   *resolver.ActorResolver
	httpClient *http.Client
}

// New creates a client. If httpClient is nil, http.DefaultClient is used.
// Mail verification resolves sender keys by fetching the actor document at
// the signature's keyId.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	actors := resolver.New(httpClient)
	return &Client{
		signer:     signer.NewDefaultSigner(),
		verifier:   verifier.NewDefaultVerifier(resolver.NewFetchKeyResolver(actors)),
		resolver:   actors,
		httpClient: httpClient,
	}
}

// Resolver exposes the underlying actor resolver.
func (c *Client) Resolver() *resolver.ActorResolver {
	return c.resolver
}

// Register announces a local actor's public key to its home instance and
// returns the actor as the instance now sees it, with the private key
// attached for signing.
func (c *Client) Register(ctx context.Context, handle, instanceAddr, privateKeyPath, publicKeyPath string) (*actor.Actor, error) {
	local, err := actor.Local(handle, instanceAddr, "", publicKeyPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, local.ID,
		bytes.NewReader([]byte(local.PublicKeyPEM)))
	if err != nil {
		return nil, fmt.Errorf("failed to create register request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &DeliveryError{Status: resp.StatusCode, Body: string(body)}
	}

	privateKey, err := keys.LoadPrivate(privateKeyPath)
	if err != nil {
		return nil, err
	}
	return c.resolver.ResolveURL(ctx, local.ID, privateKey)
}

// Deliver serializes the activity payload, signs it as the sender and
// posts it to the recipient's inbox. Only a 2xx response is success.
// A zero date means now.
func (c *Client) Deliver(ctx context.Context, payload any, sender, recipient *actor.Actor, date time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal activity: %w", err)
	}

	resp, err := c.signedRequest(ctx, http.MethodPost, recipient.Inbox, sender, body, date)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return &DeliveryError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}

// GetInbox drains the actor's inbox on its home instance. Each returned
// entry is re-verified against the original delivery signature; entries
// that fail verification are dropped. The decoded activity documents of
// the valid entries are returned.
func (c *Client) GetInbox(ctx context.Context, a *actor.Actor) ([]map[string]any, error) {
	resp, err := c.signedRequest(ctx, http.MethodGet, a.ClientInbox, a, nil, time.Time{})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &DeliveryError{Status: resp.StatusCode, Body: string(body)}
	}

	var entries []*mailbox.Mail
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode inbox: %w", err)
	}

	var valid []map[string]any
	for _, mail := range entries {
		if verr := c.verifier.Verify(ctx, a.Instance, mail.Request()); verr != nil {
			continue
		}
		content, err := mail.Content()
		if err != nil {
			continue
		}
		valid = append(valid, content)
	}
	return valid, nil
}

// WaitInbox polls GetInbox at the given interval until mail arrives or the
// context ends.
func (c *Client) WaitInbox(ctx context.Context, a *actor.Actor, interval time.Duration) ([]map[string]any, error) {
	for {
		inbox, err := c.GetInbox(ctx, a)
		if err != nil {
			return nil, err
		}
		if len(inbox) > 0 {
			return inbox, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

func (c *Client) signedRequest(ctx context.Context, method, targetURL string, sender *actor.Actor, body []byte, date time.Time) (*http.Response, error) {
	headers, err := c.signer.Sign(method, targetURL, sender, body, date)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name := range headers {
		req.Header.Set(name, headers.Get(name))
	}
	// The Go client transmits the Host from the request field, not the
	// header map.
	req.Host = headers.Get("Host")
	req.Header.Set("Content-Type", "application/activity+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	return resp, nil
}
