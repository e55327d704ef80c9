// Package mockstream provides an in-memory net.Conn standing in for the
// client socket of a synthesized request.
package mockstream

import (
	"bytes"
	"io"
	"net"
	"sync"
	"time"
)

// Addr is a TCP address given as "host:port" text.
type Addr string

func (a Addr) Network() string { return "tcp" }
func (a Addr) String() string  { return string(a) }

// Stream reads from a fixed payload and records everything written to it.
type Stream struct {
	mu      sync.Mutex
	data    *bytes.Reader
	written bytes.Buffer
	closed  bool
	local   Addr
	remote  Addr
}

var _ net.Conn = (*Stream)(nil)

// New returns a stream over data whose local and peer address are both addr.
func New(data []byte, addr string) *Stream {
	return &Stream{
		data:   bytes.NewReader(data),
		local:  Addr(addr),
		remote: Addr(addr),
	}
}

func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	return s.data.Read(p)
}

func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	return s.written.Write(p)
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Written returns a copy of the bytes written so far.
func (s *Stream) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.written.Bytes()...)
}

func (s *Stream) LocalAddr() net.Addr  { return s.local }
func (s *Stream) RemoteAddr() net.Addr { return s.remote }

// Deadlines are accepted and ignored; reads never block.
func (s *Stream) SetDeadline(time.Time) error      { return nil }
func (s *Stream) SetReadDeadline(time.Time) error  { return nil }
func (s *Stream) SetWriteDeadline(time.Time) error { return nil }

// SizedReader returns a body reader that yields at most n bytes of the stream
// and closes the stream when closed.
func (s *Stream) SizedReader(n int64) io.ReadCloser {
	return &sizedReader{Reader: io.LimitReader(s, n), stream: s}
}

type sizedReader struct {
	io.Reader
	stream *Stream
}

func (r *sizedReader) Close() error {
	return r.stream.Close()
}
