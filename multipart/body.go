// Package multipart encodes multipart/form-data request bodies for
// in-process handler tests.
//
// A Builder accumulates text fields and file uploads in call order. Finalize
// appends the closing boundary and freezes the encoded bytes into a Payload:
//
//	--<boundary>
//	Content-Disposition: form-data; name="<key>"
//
//	<value>
//	--<boundary>--
package multipart

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

const crlf = "\r\n"

// Builder is the accumulating phase of a multipart body. It is owned by a
// single test and must not be shared between goroutines.
type Builder struct {
	boundary string
	parts    []string
	entries  int
	payload  *Payload
}

// NewBuilder returns an empty Builder with a freshly generated boundary.
func NewBuilder() *Builder {
	return newBuilder(defaultRand.boundary())
}

// NewBuilderWithRand draws the boundary from r, so that tests can pin it.
func NewBuilderWithRand(r *rand.Rand) *Builder {
	return newBuilder(generateBoundary(r))
}

func NewBuilderWithBoundary(boundary string) (*Builder, error) {
	if err := validateBoundary(boundary); err != nil {
		return nil, errors.Wrap(err, "creating multipart builder")
	}
	return newBuilder(boundary), nil
}

func newBuilder(boundary string) *Builder {
	return &Builder{boundary: boundary}
}

func (b *Builder) Boundary() string {
	return b.boundary
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int {
	return b.entries
}

// Write adds a text field.
func (b *Builder) Write(key, value string) {
	// Text entries cannot fail to render.
	_ = b.Add(Text(key, value))
}

// Upload adds a file field whose contents are read from path right away.
// When the file cannot be read the builder is left untouched and the error
// carries the underlying I/O error.
func (b *Builder) Upload(key, path string) error {
	return b.Add(File(key, path))
}

// Add renders e and appends its delimiter, header and value segments.
func (b *Builder) Add(e Entry) error {
	if b.payload != nil {
		panic("multipart: entry added after Finalize")
	}

	headers := e.Headers()
	value, err := e.Body()
	if err != nil {
		return err
	}

	b.parts = append(b.parts, b.delimiter(), headers, string(value))
	b.entries++
	return nil
}

// Finalize appends the closing boundary and returns the encoded body.
// Later calls return the same Payload, and further writes panic.
func (b *Builder) Finalize() *Payload {
	if b.payload != nil {
		return b.payload
	}

	parts := make([]string, 0, len(b.parts)+1)
	parts = append(parts, b.parts...)
	parts = append(parts, b.delimiter()+"--")

	b.payload = &Payload{
		boundary: b.boundary,
		data:     []byte(strings.Join(parts, crlf)),
	}
	return b.payload
}

func (b *Builder) ContentType() string {
	return contentType(b.boundary)
}

// SetHeaders sets the Content-Type header carrying the builder's boundary.
func (b *Builder) SetHeaders(header http.Header) {
	header.Set("Content-Type", b.ContentType())
}

func (b *Builder) delimiter() string {
	return "--" + b.boundary
}

// Payload is a finalized multipart body.
type Payload struct {
	boundary string
	data     []byte
}

func (p *Payload) Boundary() string {
	return p.boundary
}

// Bytes returns the encoded body. The caller must not modify the slice.
func (p *Payload) Bytes() []byte {
	return p.data
}

func (p *Payload) String() string {
	return string(p.data)
}

func (p *Payload) Len() int {
	return len(p.data)
}

func (p *Payload) ContentType() string {
	return contentType(p.boundary)
}

func (p *Payload) SetHeaders(header http.Header) {
	header.Set("Content-Type", p.ContentType())
}

func contentType(boundary string) string {
	return "multipart/form-data; boundary=" + boundary
}
