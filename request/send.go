// Package request dispatches synthesized requests to an http.Handler
// in-process and returns the recorded response.
package request

import (
	"net/http"
	"net/http/httptest"

	"github.com/HexmosTech/htest/internal/logging"
	"github.com/HexmosTech/htest/multipart"
)

// Get dispatches a GET request with an empty body.
func Get(rawurl string, header http.Header, handler http.Handler) (*http.Response, error) {
	return Do(http.MethodGet, rawurl, emptyBody, header, handler)
}

func Post(rawurl string, header http.Header, body RequestBody, handler http.Handler) (*http.Response, error) {
	return Do(http.MethodPost, rawurl, body, header, handler)
}

// PostMultipart finalizes body and POSTs it with the matching
// multipart/form-data Content-Type.
func PostMultipart(rawurl string, header http.Header, body *multipart.Builder, handler http.Handler) (*http.Response, error) {
	return Do(http.MethodPost, rawurl, body.Finalize(), header, handler)
}

func Patch(rawurl string, header http.Header, body RequestBody, handler http.Handler) (*http.Response, error) {
	return Do(http.MethodPatch, rawurl, body, header, handler)
}

func Put(rawurl string, header http.Header, body RequestBody, handler http.Handler) (*http.Response, error) {
	return Do(http.MethodPut, rawurl, body, header, handler)
}

func Delete(rawurl string, header http.Header, handler http.Handler) (*http.Response, error) {
	return Do(http.MethodDelete, rawurl, emptyBody, header, handler)
}

func Options(rawurl string, header http.Header, handler http.Handler) (*http.Response, error) {
	return Do(http.MethodOptions, rawurl, emptyBody, header, handler)
}

func Head(rawurl string, header http.Header, handler http.Handler) (*http.Response, error) {
	return Do(http.MethodHead, rawurl, emptyBody, header, handler)
}

// Do builds the request and passes it to handler. The returned response
// carries the built request in its Request field.
func Do(method, rawurl string, body RequestBody, header http.Header, handler http.Handler) (*http.Response, error) {
	r, err := Build(method, rawurl, body, header)
	if err != nil {
		return nil, err
	}

	log := logging.Logger()
	log.Debug("dispatching request", "method", r.Method, "url", r.URL.String(), "contentLength", r.ContentLength)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	resp := rec.Result()
	resp.Request = r
	log.Debug("handler responded", "status", resp.StatusCode, "url", r.URL.String())
	return resp, nil
}
