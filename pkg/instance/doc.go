// Package instance parses and normalizes federation node addresses.
//
// An Instance is the canonical descriptor of a node: scheme, hostname and
// optional port. It accepts three input shapes:
//
//	instance.Parse("https://social.example.com")
//	instance.Parse("social.example.com:8080/users/alice")
//	instance.FromURL(parsedURL)
//
// Equality and rendering deliberately exclude the path component, so an
// instance extracted from an actor URL compares equal to one parsed from a
// configured base address:
//
//	a, _ := instance.ParseWithScheme("example.com:8080", "http")
//	b, _ := instance.Parse("http://example.com:8080/users/x")
//	a.Equal(b) // true
//
// When the input carries no scheme, one is inferred: loopback hosts and
// port 80 map to "http", port 443 maps to "https", anything else falls back
// to the caller-supplied default.
package instance
