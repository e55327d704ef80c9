package multipart

import (
	"io/ioutil"
	"path/filepath"

	"github.com/pkg/errors"
)

type EntryKind int

const (
	TextEntry EntryKind = iota
	FileEntry
)

func (k EntryKind) String() string {
	switch k {
	case TextEntry:
		return "text"
	case FileEntry:
		return "file"
	default:
		return "unknown"
	}
}

// Entry is a single part of a multipart body. Value is used only when
// Kind == TextEntry and Path only when Kind == FileEntry.
type Entry struct {
	Kind  EntryKind
	Key   string
	Value string
	Path  string
}

func Text(key, value string) Entry {
	return Entry{Kind: TextEntry, Key: key, Value: value}
}

func File(key, path string) Entry {
	return Entry{Kind: FileEntry, Key: key, Path: path}
}

// Headers returns the Content-Disposition line of the entry, terminated by CRLF.
// It panics when a file entry's path has no final component.
func (e Entry) Headers() string {
	switch e.Kind {
	case TextEntry:
		return `Content-Disposition: form-data; name="` + e.Key + `"` + "\r\n"
	case FileEntry:
		return `Content-Disposition: form-data; name="` + e.Key + `"; filename="` + e.Filename() + `"` + "\r\n"
	default:
		panic(errors.Errorf("multipart: unknown entry kind: %v", e.Kind))
	}
}

// Body returns the payload of the entry. File entries are read from disk
// every time Body is called.
func (e Entry) Body() ([]byte, error) {
	switch e.Kind {
	case TextEntry:
		return []byte(e.Value), nil
	case FileEntry:
		data, err := ioutil.ReadFile(e.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading upload of '%s'", e.Key)
		}
		return data, nil
	default:
		return nil, errors.Errorf("unknown entry kind: %v", e.Kind)
	}
}

// Filename is the final component of Path.
func (e Entry) Filename() string {
	name, ok := finalComponent(e.Path)
	if !ok {
		panic(errors.Errorf("multipart: upload path of '%s' has no file name: %q", e.Key, e.Path))
	}
	return name
}

func finalComponent(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	base := filepath.Base(path)
	switch base {
	case ".", "..", string(filepath.Separator):
		return "", false
	}
	return base, true
}
