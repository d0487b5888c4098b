// Package relaytest provides an in-process mock signing relay for tests. It
// records every request it receives and replays a scripted sequence of
// responses; once the script is exhausted it echoes the request body back,
// which is convenient for round-trip assertions.
package relaytest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Request is one captured relay request.
type Request struct {
	Path   string
	Header http.Header
	Body   []byte
}

// Response is one scripted relay response.
type Response struct {
	Status int
	Body   string
}

// Server is a scriptable mock relay backed by httptest.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	script   []Response
	requests []Request
}

// New starts a mock relay that replays the given responses in order. Close
// it with Server.Close when the test finishes.
func New(script ...Response) *Server {
	s := &Server{script: script}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	var next *Response
	if len(s.script) > 0 {
		next = &s.script[0]
		s.script = s.script[1:]
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if next == nil {
		// Echo mode: the request body is the response payload.
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	w.WriteHeader(next.Status)
	_, _ = w.Write([]byte(next.Body))
}

// Requests returns a copy of all captured requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns how many requests the relay has received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
