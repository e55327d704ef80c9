package exchange

import (
	"io/ioutil"
	"net/http"

	"github.com/HexmosTech/htest/input"
	"github.com/HexmosTech/htest/multipart"
	"github.com/HexmosTech/htest/request"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// BuildHTTPRequest encodes the parts of in as a multipart body and builds
// the request a handler would receive.
func BuildHTTPRequest(in *input.Input, options *Options) (*http.Request, error) {
	header, err := buildHTTPHeader(in)
	if err != nil {
		return nil, err
	}

	body, err := BuildMultipartBody(in, options)
	if err != nil {
		return nil, err
	}

	return request.Build(string(in.Method), in.URL.String(), body.Finalize(), header)
}

func BuildMultipartBody(in *input.Input, options *Options) (*multipart.Builder, error) {
	body, err := newBuilder(options)
	if err != nil {
		return nil, err
	}

	for _, part := range in.Parts {
		if part.Upload {
			if err := body.Upload(part.Name, part.Value); err != nil {
				return nil, err
			}
			continue
		}
		value, err := resolveFieldValue(part.Field)
		if err != nil {
			return nil, err
		}
		body.Write(part.Name, value)
	}
	return body, nil
}

func newBuilder(options *Options) (*multipart.Builder, error) {
	switch {
	case options.Boundary != "":
		return multipart.NewBuilderWithBoundary(options.Boundary)
	case options.UseSeed:
		return multipart.NewBuilderWithRand(rand.New(rand.NewSource(options.Seed))), nil
	default:
		return multipart.NewBuilder(), nil
	}
}

func buildHTTPHeader(in *input.Input) (http.Header, error) {
	header := make(http.Header)
	for _, field := range in.Header.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		header.Add(field.Name, value)
	}
	return header, nil
}

func resolveFieldValue(field input.Field) (string, error) {
	if !field.IsFile {
		return field.Value, nil
	}
	data, err := ioutil.ReadFile(field.Value)
	if err != nil {
		return "", errors.Wrapf(err, "reading field value of '%s'", field.Name)
	}
	return string(data), nil
}
