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

package instance

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrMalformedInstance is returned when no hostname can be extracted from
// the input, in either URL or bare host[:port][/path] form.
var ErrMalformedInstance = errors.New("malformed instance")

// DefaultScheme is assumed when the input carries no scheme and none of the
// inference rules apply.
const DefaultScheme = "https"

// Instance identifies a federated node by scheme, hostname and port.
//
// Path is retained from the input for request-target construction but is
// excluded from both Equal and String: two instances parsed from different
// literals compare equal whenever scheme, hostname and port match.
type Instance struct {
	Scheme   string
	Hostname string
	Port     int // 0 when absent
	Path     string
}

// Parse parses raw with the default scheme ("https").
func Parse(raw string) (*Instance, error) {
	return ParseWithScheme(raw, DefaultScheme)
}

// ParseWithScheme parses a full URL ("https://host:port/path") or a bare
// "host[:port][/path]" string into an Instance.
//
// Scheme inference, in order: an explicit scheme in the input wins; a
// loopback hostname infers "http"; port 80 infers "http"; port 443 infers
// "https"; otherwise defaultScheme is used.
func ParseWithScheme(raw, defaultScheme string) (*Instance, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedInstance)
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInstance, err)
		}
		return FromURL(u)
	}

	// Bare form: host[:port][/path]
	hostPart := raw
	path := "/"
	if idx := strings.Index(raw, "/"); idx >= 0 {
		hostPart = raw[:idx]
		path = raw[idx:]
	}

	hostname := hostPart
	port := 0
	switch {
	case strings.HasPrefix(hostPart, "["):
		// Bracketed IPv6, optionally with a port: "[::1]" or "[::1]:8080".
		end := strings.Index(hostPart, "]")
		if end < 0 {
			return nil, fmt.Errorf("%w: unclosed bracket in %q", ErrMalformedInstance, raw)
		}
		hostname = hostPart[1:end]
		if rest := hostPart[end+1:]; rest != "" {
			if !strings.HasPrefix(rest, ":") {
				return nil, fmt.Errorf("%w: invalid host %q", ErrMalformedInstance, hostPart)
			}
			p, err := strconv.Atoi(rest[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: invalid port %q", ErrMalformedInstance, rest[1:])
			}
			port = p
		}
	case strings.Count(hostPart, ":") > 1:
		// Bare IPv6 literal; carrying a port requires the bracketed form.
	case strings.Contains(hostPart, ":"):
		idx := strings.Index(hostPart, ":")
		hostname = hostPart[:idx]
		p, err := strconv.Atoi(hostPart[idx+1:])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid port %q", ErrMalformedInstance, hostPart[idx+1:])
		}
		port = p
	}
	if hostname == "" {
		return nil, fmt.Errorf("%w: no hostname in %q", ErrMalformedInstance, raw)
	}

	return &Instance{
		Scheme:   inferScheme(hostname, port, defaultScheme),
		Hostname: hostname,
		Port:     port,
		Path:     path,
	}, nil
}

// FromURL builds an Instance from a pre-parsed URL. The URL must carry a
// hostname.
func FromURL(u *url.URL) (*Instance, error) {
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: no hostname in %q", ErrMalformedInstance, u.String())
	}
	port := 0
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid port %q", ErrMalformedInstance, p)
		}
		port = n
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return &Instance{
		Scheme:   u.Scheme,
		Hostname: u.Hostname(),
		Port:     port,
		Path:     path,
	}, nil
}

// String renders "scheme://host" or "scheme://host:port". The path is never
// included: this is the form used for Host headers and URL construction.
func (i *Instance) String() string {
	host := i.Hostname
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if i.Port == 0 {
		return fmt.Sprintf("%s://%s", i.Scheme, host)
	}
	return fmt.Sprintf("%s://%s:%d", i.Scheme, host, i.Port)
}

// Equal reports whether two instances match on scheme, hostname and port.
func (i *Instance) Equal(other *Instance) bool {
	if other == nil {
		return false
	}
	return i.Scheme == other.Scheme &&
		i.Hostname == other.Hostname &&
		i.Port == other.Port
}

func inferScheme(hostname string, port int, defaultScheme string) string {
	switch {
	case isLoopback(hostname):
		return "http"
	case port == 80:
		return "http"
	case port == 443:
		return "https"
	default:
		return defaultScheme
	}
}

func isLoopback(hostname string) bool {
	return hostname == "127.0.0.1" || hostname == "::1" || hostname == "localhost"
}
