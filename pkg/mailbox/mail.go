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

import (
	"encoding/json"
	"net/http"

	"github.com/phant-project/phant-go/pkg/verifier"
)

// Mail is a delivered request preserved verbatim: enough to re-run
// signature verification on the reading side.
//
// Body bytes travel as an array of byte values (data_array) rather than a
// string, keeping arbitrary binary content JSON-safe on the wire.
type Mail struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	ContentType string            `json:"content_type"`
	DataArray   []int             `json:"data_array"`
}

// NewMail captures an inbound verified request as a mail entry.
func NewMail(req *verifier.Request) *Mail {
	headers := make(map[string]string, len(req.Header))
	for name := range req.Header {
		headers[name] = req.Header.Get(name)
	}
	data := make([]int, len(req.Body))
	for i, b := range req.Body {
		data[i] = int(b)
	}
	return &Mail{
		Method:      req.Method,
		Path:        req.Path,
		Headers:     headers,
		ContentType: req.ContentType,
		DataArray:   data,
	}
}

// Data reassembles the raw body bytes.
func (m *Mail) Data() []byte {
	data := make([]byte, len(m.DataArray))
	for i, b := range m.DataArray {
		data[i] = byte(b)
	}
	return data
}

// Content unmarshals the body as a JSON document.
func (m *Mail) Content() (map[string]any, error) {
	var content map[string]any
	if err := json.Unmarshal(m.Data(), &content); err != nil {
		return nil, err
	}
	return content, nil
}

// Request rebuilds the verification view of the original delivery, so a
// reader can re-check the signature locally before trusting the content.
func (m *Mail) Request() *verifier.Request {
	header := make(http.Header, len(m.Headers))
	for name, value := range m.Headers {
		header.Set(name, value)
	}
	return &verifier.Request{
		Method:      m.Method,
		Path:        m.Path,
		Header:      header,
		ContentType: m.ContentType,
		Body:        m.Data(),
	}
}
