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

package server

import (
	"bytes"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/phant-project/phant-go/pkg/verifier"
)

// requireSignature verifies the request signature before the handler runs.
// The body is buffered so the handler can still read it after verification
// consumed it.
func (s *Service) requireSignature(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body.Close()
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		req := verifier.FromHTTP(r, body)
		if verr := s.verifier.Verify(r.Context(), s.instance, req); verr != nil {
			s.logger.Info("rejected",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", verr.Status),
				zap.String("reason", verr.Reason),
			)
			http.Error(w, verr.Reason, verr.Status)
			return
		}
		next(w, r)
	}
}
