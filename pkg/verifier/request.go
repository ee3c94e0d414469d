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

package verifier

import "net/http"

// Request captures the exact request surface verification needs: method,
// path, headers, content type and raw body. It is built from a live
// *http.Request on the server, and from stored mail entries when a client
// re-verifies drained messages.
type Request struct {
	Method      string
	Path        string
	Header      http.Header
	ContentType string
	Body        []byte
}

// FromHTTP adapts a live request. The body must already have been read out;
// the Host, stripped into r.Host by the HTTP machinery, is restored as a
// regular header so verification sees the wire form.
func FromHTTP(r *http.Request, body []byte) *Request {
	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	if r.Host != "" {
		header.Set("Host", r.Host)
	}
	return &Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		Header:      header,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	}
}
