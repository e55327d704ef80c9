package request

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"strconv"

	"github.com/HexmosTech/htest/internal/config"
	"github.com/HexmosTech/htest/mockstream"
	"github.com/HexmosTech/htest/version"
	"github.com/pkg/errors"
)

// Build synthesizes the request a server would hand to a handler. header is
// copied, never modified. A nil body is treated as empty.
func Build(method, rawurl string, body RequestBody, header http.Header) (*http.Request, error) {
	u, err := parseURL(rawurl)
	if err != nil {
		return nil, err
	}

	if header == nil {
		header = make(http.Header)
	} else {
		header = header.Clone()
	}
	if body == nil {
		body = emptyBody
	}

	data := body.Bytes()
	body.SetHeaders(header)

	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", userAgent())
	}
	header.Set("Content-Length", strconv.Itoa(len(data)))

	host := u.Host
	if h := header.Get("Host"); h != "" {
		host = h
		header.Del("Host")
	}

	stream := mockstream.New(data, config.RemoteAddr())
	r := &http.Request{
		Method:        method,
		URL:           u,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Host:          host,
		Body:          stream.SizedReader(int64(len(data))),
		ContentLength: int64(len(data)),
		RemoteAddr:    stream.RemoteAddr().String(),
		RequestURI:    u.RequestURI(),
	}
	if u.Scheme == "https" {
		r.TLS = &tls.ConnectionState{
			Version:           tls.VersionTLS12,
			HandshakeComplete: true,
			ServerName:        u.Hostname(),
		}
	}
	return r, nil
}

func parseURL(rawurl string) (*url.URL, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, errors.Wrap(err, "parsing URL")
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, errors.Errorf("URL must be absolute: %s", rawurl)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

func userAgent() string {
	if ua := config.UserAgent(); ua != "" {
		return ua
	}
	return version.UserAgent()
}
