// Package response drains recorded responses for assertions.
package response

import (
	"bytes"
	"io"
	"io/ioutil"
	"net/http"
	"unicode/utf8"

	"github.com/HexmosTech/htest/output"
	"github.com/pkg/errors"
)

// ExtractBodyToBytes reads the whole body and closes it. A response
// without a body yields an empty slice.
func ExtractBodyToBytes(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil {
		return []byte{}, nil
	}
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	return b, nil
}

// ExtractBodyToString is ExtractBodyToBytes for UTF-8 bodies.
func ExtractBodyToString(resp *http.Response) (string, error) {
	b, err := ExtractBodyToBytes(resp)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("response body is not valid UTF-8")
	}
	return string(b), nil
}

// Dump prints the parts of the exchange selected by options: the request
// line and headers, the status line and headers, and the response body.
// A printed body is restored afterwards so that it can still be extracted.
func Dump(w io.Writer, resp *http.Response, options *output.Options) error {
	printer := output.NewPrinter(w, options)

	if options.PrintRequestHeader && resp.Request != nil {
		if err := printer.PrintRequestLine(resp.Request); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Request.Header); err != nil {
			return err
		}
	}

	if options.PrintResponseHeader {
		if err := printer.PrintStatusLine(resp.Proto, resp.Status, resp.StatusCode); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
	}

	if !options.PrintResponseBody {
		return nil
	}
	body, err := ExtractBodyToBytes(resp)
	if err != nil {
		return err
	}
	resp.Body = ioutil.NopCloser(bytes.NewReader(body))
	return printer.PrintBody(bytes.NewReader(body), resp.Header.Get("Content-Type"))
}
