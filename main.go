package htest

import (
	"bufio"
	"bytes"
	"io/ioutil"
	"os"

	"github.com/HexmosTech/htest/exchange"
	"github.com/HexmosTech/htest/flags"
	"github.com/HexmosTech/htest/input"
	"github.com/HexmosTech/htest/internal/logging"
	"github.com/HexmosTech/htest/output"
	"github.com/HexmosTech/htest/version"
	"github.com/pkg/errors"
)

// Main encodes the request items given on the command line as a
// multipart/form-data request and prints it.
func Main() error {
	args, usage, optionSet, err := flags.Parse(os.Args)
	if err != nil {
		usage.PrintUsage(os.Stderr)
		return err
	}

	if optionSet.PrintVersion {
		version.PrintVersion(os.Stdout)
		return nil
	}
	if optionSet.PrintLicenses {
		version.PrintLicenses(os.Stdout)
		return nil
	}

	// Parse positional arguments
	in, err := input.ParseArgs(args, os.Stdin, &optionSet.InputOptions)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		usage.PrintUsage(os.Stderr)
		return err
	}
	if err != nil {
		return err
	}

	// Encode request
	req, err := exchange.BuildHTTPRequest(in, &optionSet.ExchangeOptions)
	if err != nil {
		return err
	}
	logging.Logger().Debug("encoded request", "method", req.Method, "url", req.URL.String(), "length", req.ContentLength)

	// Print request
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()
	options := &optionSet.OutputOptions
	printer := output.NewPrinter(writer, options)
	if options.PrintRequestHeader {
		if err := printer.PrintRequestLine(req); err != nil {
			return err
		}
		if err := printer.PrintHeader(req.Header); err != nil {
			return err
		}
	}
	if options.PrintRequestBody {
		body, err := ioutil.ReadAll(req.Body)
		if err != nil {
			return errors.Wrap(err, "reading encoded body")
		}
		if err := printer.PrintBody(bytes.NewReader(body), req.Header.Get("Content-Type")); err != nil {
			return err
		}
	}
	return nil
}
