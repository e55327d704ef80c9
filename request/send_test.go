package request

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HexmosTech/htest/multipart"
	"github.com/gorilla/mux"
	"github.com/kinbiko/jsonassert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBody(t *testing.T, resp *http.Response) string {
	defer resp.Body.Close()
	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read all: %s", err)
	}
	return string(b)
}

var helloWorldHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "Hello, world!")
})

func nameHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	parts := []string{r.PostForm.Get("first_name"), r.PostForm.Get("last_name")}
	if id, ok := mux.Vars(r)["id"]; ok {
		parts = append(parts, id)
	}
	io.WriteString(w, strings.Join(parts, " "))
}

func multipartFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if values := r.MultipartForm.Value["key"]; len(values) > 0 {
		io.WriteString(w, values[0])
		return
	}
	if files := r.MultipartForm.File["key"]; len(files) > 0 {
		io.WriteString(w, files[0].Filename)
		return
	}
}

func formHeader() http.Header {
	return http.Header{"Content-Type": []string{"application/x-www-form-urlencoded"}}
}

func TestGet(t *testing.T) {
	resp, err := Get("http://localhost:3000", nil, helloWorldHandler)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello, world!", readBody(t, resp))
}

func TestPost(t *testing.T) {
	resp, err := Post("http://localhost:3000/users", formHeader(),
		NewStringBody("first_name=Example&last_name=User"), http.HandlerFunc(nameHandler))
	require.NoError(t, err)

	assert.Equal(t, "Example User", readBody(t, resp))
}

func TestPatch(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/users/{id}", nameHandler).Methods(http.MethodPatch)

	resp, err := Patch("http://localhost:3000/users/1", formHeader(),
		NewStringBody("first_name=Example&last_name=User"), router)
	require.NoError(t, err)

	assert.Equal(t, "Example User 1", readBody(t, resp))
}

func TestPut(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/users/{id}", nameHandler).Methods(http.MethodPut)

	resp, err := Put("http://localhost:3000/users/2", formHeader(),
		NewBytesBody([]byte("first_name=Example&last_name=User")), router)
	require.NoError(t, err)

	assert.Equal(t, "Example User 2", readBody(t, resp))
}

func TestDelete(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, mux.Vars(r)["id"])
	}).Methods(http.MethodDelete)

	resp, err := Delete("http://localhost:3000/1", nil, router)
	require.NoError(t, err)

	assert.Equal(t, "1", readBody(t, resp))
}

func TestDelete_RouteMismatch(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/{id}", helloWorldHandler).Methods(http.MethodGet)

	resp, err := Delete("http://localhost:3000/1", nil, router)
	require.NoError(t, err)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestOptions(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodOptions, r.Method)
		io.WriteString(w, "ALLOW: GET,POST")
	})

	resp, err := Options("http://localhost:3000/users/options", nil, handler)
	require.NoError(t, err)

	assert.Equal(t, "ALLOW: GET,POST", readBody(t, resp))
}

func TestHead(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	resp, err := Head("http://localhost:3000/users", nil, handler)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", readBody(t, resp))
}

func TestPostMultipart_Text(t *testing.T) {
	body := multipart.NewBuilder()
	body.Write("key", "my value")

	resp, err := PostMultipart("http://localhost:3000/multipart", nil, body, http.HandlerFunc(multipartFormHandler))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "my value", readBody(t, resp))
}

func TestPostMultipart_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte("Hello, world!"), 0644))
	body := multipart.NewBuilder()
	require.NoError(t, body.Upload("key", path))

	resp, err := PostMultipart("http://localhost:3000", nil, body, http.HandlerFunc(multipartFormHandler))
	require.NoError(t, err)

	assert.Equal(t, "file.txt", readBody(t, resp))
}

func TestPostMultipart_FileContents(t *testing.T) {
	// Setup
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte("Hello, world!"), 0644))
	body := multipart.NewBuilder()
	body.Write("title", "greeting")
	require.NoError(t, body.Upload("upload", path))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, header, err := r.FormFile("upload")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		content, _ := ioutil.ReadAll(f)
		json.NewEncoder(w).Encode(map[string]string{
			"title":    r.FormValue("title"),
			"filename": header.Filename,
			"content":  string(content),
		})
	})

	// Exercise
	resp, err := PostMultipart("http://localhost:3000/upload", nil, body, handler)
	require.NoError(t, err)

	// Verify
	jsonassert.New(t).Assertf(readBody(t, resp), `{
		"title": "greeting",
		"filename": "file.txt",
		"content": "Hello, world!"
	}`)
}

func TestPostMultipart_AdvertisedBoundary(t *testing.T) {
	body := multipart.NewBuilder()
	body.Write("key", "value")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "multipart/form-data; boundary="+body.Boundary(), r.Header.Get("Content-Type"))
		b, _ := ioutil.ReadAll(r.Body)
		assert.True(t, strings.HasSuffix(string(b), "--"+body.Boundary()+"--"))
		assert.Equal(t, int64(len(b)), r.ContentLength)
	})

	_, err := PostMultipart("http://localhost:3000", nil, body, handler)
	require.NoError(t, err)
}

func TestDo_InvalidURL(t *testing.T) {
	testCases := []struct {
		title string
		url   string
	}{
		{title: "Unparsable", url: "http://[::1"},
		{title: "Relative", url: "/users"},
		{title: "Missing host", url: "http:///users"},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			called := false
			handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

			resp, err := Get(tt.url, nil, handler)

			assert.Error(t, err)
			assert.Nil(t, resp)
			assert.False(t, called)
		})
	}
}

func TestDo_ResponseCarriesRequest(t *testing.T) {
	resp, err := Get("http://localhost:3000/hello", nil, helloWorldHandler)
	require.NoError(t, err)

	require.NotNil(t, resp.Request)
	assert.Equal(t, "/hello", resp.Request.URL.Path)
}

func TestDo_RemoteAddrFromEnvironment(t *testing.T) {
	if os.Getenv("HTEST_REMOTEADDR") != "" {
		t.Skip("remote address is overridden by the environment")
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, r.RemoteAddr)
	})

	resp, err := Get("http://localhost:3000", nil, handler)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", readBody(t, resp))
}
