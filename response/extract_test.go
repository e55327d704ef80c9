package response

import (
	"bytes"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/HexmosTech/htest/output"
	"github.com/HexmosTech/htest/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var helloWorldHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, "Hello, world!")
})

func TestExtractBodyToString(t *testing.T) {
	resp, err := request.Get("http://localhost:3000", nil, helloWorldHandler)
	require.NoError(t, err)

	result, err := ExtractBodyToString(resp)

	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", result)
}

func TestExtractBodyToBytes(t *testing.T) {
	resp, err := request.Get("http://localhost:3000", nil, helloWorldHandler)
	require.NoError(t, err)

	result, err := ExtractBodyToBytes(resp)

	require.NoError(t, err)
	assert.Equal(t, []byte("Hello, world!"), result)
}

func TestExtractBodyToBytes_NoBody(t *testing.T) {
	result, err := ExtractBodyToBytes(&http.Response{})

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestExtractBodyToString_InvalidUTF8(t *testing.T) {
	resp := &http.Response{Body: ioutil.NopCloser(bytes.NewReader([]byte{0xff, 0xfe}))}

	_, err := ExtractBodyToString(resp)

	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	// Setup
	resp, err := request.Get("http://localhost:3000/hello", http.Header{"User-Agent": []string{"dump-test"}}, helloWorldHandler)
	require.NoError(t, err)
	var buffer strings.Builder

	// Exercise
	err = Dump(&buffer, resp, &output.Options{
		PrintRequestHeader:  true,
		PrintResponseHeader: true,
		PrintResponseBody:   true,
	})
	require.NoError(t, err)

	// Verify
	expected := strings.Join([]string{
		"GET http://localhost:3000/hello HTTP/1.1",
		"Content-Length: 0",
		"User-Agent: dump-test",
		"",
		"HTTP/1.1 200 OK",
		"Content-Type: text/plain",
		"",
		"Hello, world!",
	}, "\n")
	assert.Equal(t, expected, buffer.String())

	body, err := ExtractBodyToString(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", body)
}

func TestDump_Options(t *testing.T) {
	testCases := []struct {
		title    string
		options  output.Options
		expected string
	}{
		{
			title:    "Nothing",
			options:  output.Options{},
			expected: "",
		},
		{
			title:    "Response body only",
			options:  output.Options{PrintResponseBody: true},
			expected: "Hello, world!",
		},
		{
			title:    "Response header only",
			options:  output.Options{PrintResponseHeader: true},
			expected: "HTTP/1.1 200 OK\nContent-Type: text/plain\n\n",
		},
		{
			title:    "Request header only",
			options:  output.Options{PrintRequestHeader: true},
			expected: "GET http://localhost:3000/hello HTTP/1.1\nContent-Length: 0\nUser-Agent: dump-test\n\n",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			resp, err := request.Get("http://localhost:3000/hello", http.Header{"User-Agent": []string{"dump-test"}}, helloWorldHandler)
			require.NoError(t, err)
			var buffer strings.Builder

			err = Dump(&buffer, resp, &tt.options)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, buffer.String())
			body, err := ExtractBodyToString(resp)
			require.NoError(t, err)
			assert.Equal(t, "Hello, world!", body)
		})
	}
}
