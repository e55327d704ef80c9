package input

import "net/url"

type Input struct {
	Method Method
	URL    *url.URL
	Header Header
	Parts  []Part
}

type Method string

type Header struct {
	Fields []Field
}

// Field is a name/value pair. When IsFile is set, Value is a path and the
// file contents become the value.
type Field struct {
	Name   string
	Value  string
	IsFile bool
}

// Part is one entry of the multipart body, in command-line order.
type Part struct {
	Field
	Upload bool // sent as a file upload named after the path (key@path)
}

type Options struct {
	Method string
}
