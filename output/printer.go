package output

import (
	"io"
	"net/http"
)

type Printer interface {
	PrintStatusLine(proto string, status string, statusCode int) error
	PrintRequestLine(req *http.Request) error
	PrintHeader(header http.Header) error
	PrintBody(body io.Reader, contentType string) error
}

// NewPrinter returns a PrettyPrinter when formatting is enabled and a
// PlainPrinter otherwise.
func NewPrinter(w io.Writer, options *Options) Printer {
	if options.EnableFormat {
		return NewPrettyPrinter(PrettyPrinterConfig{
			Writer:      w,
			EnableColor: options.EnableColor,
		})
	}
	return NewPlainPrinter(w)
}
