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
	"net/http"

	"go.uber.org/zap"
)

// route binds one method+pattern to a handler. Signed routes run the
// signature check before the handler sees the request.
type route struct {
	method  string
	pattern string
	signed  bool
	handler http.HandlerFunc
}

func (s *Service) routes() []route {
	return []route{
		{http.MethodGet, "/.well-known/webfinger", false, s.handleWebfinger},
		{http.MethodGet, "/users/{user}", false, s.handleGetUser},
		{http.MethodPost, "/users/{user}", false, s.handleRegisterUser},
		{http.MethodPost, "/external_keys", false, s.handleExternalKeys},
		{http.MethodGet, "/users/{user}/inbox", true, s.handleInboxGet},
		{http.MethodPost, "/users/{user}/inbox", true, s.handleInboxPost},
		{http.MethodGet, "/robots.txt", false, s.handleRobots},
		{http.MethodGet, "/.well-known/nodeinfo", false, s.handleNodeInfoIndex},
		{http.MethodGet, "/nodeinfo/2.0", false, s.handleNodeInfo},
		{http.MethodGet, "/api/v1/instance", false, s.handleMastodonInstance},
	}
}

// Handler builds the full route table on a ServeMux. Each route is also
// reachable with a trailing slash, and anything unmatched lands on the
// 501 fallback.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, rt := range s.routes() {
		handler := rt.handler
		if rt.signed {
			handler = s.requireSignature(handler)
		}
		mux.HandleFunc(rt.method+" "+rt.pattern, handler)
		mux.HandleFunc(rt.method+" "+rt.pattern+"/{$}", handler)
	}
	mux.HandleFunc("/", s.handleNotImplemented)
	return mux
}

func (s *Service) handleNotImplemented(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("NOT IMPLEMENTED",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	http.Error(w, "Not implemented", http.StatusNotImplemented)
}
