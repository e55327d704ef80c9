package request

import "net/http"

// RequestBody is the payload of a synthesized request. Dispatch calls
// Bytes and then SetHeaders, exactly once each.
type RequestBody interface {
	// Bytes returns the body as it goes on the wire.
	Bytes() []byte

	// SetHeaders sets any header the body requires, e.g. Content-Type.
	SetHeaders(header http.Header)
}

// StringBody is a plain body. It sets no headers.
type StringBody struct {
	data []byte
}

func NewStringBody(s string) *StringBody {
	return &StringBody{data: []byte(s)}
}

func NewBytesBody(b []byte) *StringBody {
	return &StringBody{data: b}
}

func (b *StringBody) Bytes() []byte {
	return b.data
}

func (b *StringBody) SetHeaders(http.Header) {}

var emptyBody = NewStringBody("")
