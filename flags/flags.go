package flags

import (
	"io"
	"os"
	"strconv"

	"github.com/HexmosTech/htest/exchange"
	"github.com/HexmosTech/htest/input"
	"github.com/HexmosTech/htest/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

type Usage interface {
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	InputOptions    input.Options
	ExchangeOptions exchange.Options
	OutputOptions   output.Options

	PrintVersion  bool
	PrintLicenses bool
}

type terminalInfo struct {
	stdoutIsTerminal bool
}

func getTerminalInfo() terminalInfo {
	return terminalInfo{
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

func Parse(args []string) ([]string, Usage, *OptionSet, error) {
	return parse(args, getTerminalInfo())
}

func parse(args []string, terminalInfo terminalInfo) ([]string, Usage, *OptionSet, error) {
	inputOptions := input.Options{}
	exchangeOptions := exchange.Options{}
	outputOptions := output.Options{}
	optionSet := &OptionSet{}
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print
	seed := ""
	var pretty string

	flagSet := getopt.New()
	flagSet.SetParameters("[METHOD] URL [REQUEST_ITEM [REQUEST_ITEM ...]]")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (HB)")
	flagSet.StringVarLong(&exchangeOptions.Boundary, "boundary", 'b', "use the given multipart boundary")
	flagSet.StringVarLong(&seed, "seed", 0, "seed the boundary generator for a reproducible boundary")
	flagSet.StringVarLong(&inputOptions.Method, "method", 'm', "default method when none is given (default: POST)")
	flagSet.StringVarLong(&pretty, "pretty", 0, "controls output formatting (all, format, none)")
	flagSet.BoolVarLong(&optionSet.PrintVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.PrintLicenses, "licenses", 0, "print license information and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, flagSet, nil, errors.Wrap(err, "parsing flags")
	}

	// Parse --print
	if err := parsePrintFlag(printFlag, &outputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	// Parse --seed
	if seed != "" {
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, flagSet, nil, errors.Errorf("Value of --seed must be a non-negative integer: %v", seed)
		}
		exchangeOptions.Seed = n
		exchangeOptions.UseSeed = true
	}

	// Parse --pretty
	if err := parsePretty(pretty, terminalInfo, &outputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	optionSet.InputOptions = inputOptions
	optionSet.ExchangeOptions = exchangeOptions
	optionSet.OutputOptions = outputOptions
	return flagSet.Args(), flagSet, optionSet, nil
}

func parsePrintFlag(printFlag string, outputOptions *output.Options) error {
	if printFlag == "\000" {
		// --print is not specified
		outputOptions.PrintRequestHeader = true
		outputOptions.PrintRequestBody = true
		return nil
	}
	for _, c := range printFlag {
		switch c {
		case 'H':
			outputOptions.PrintRequestHeader = true
		case 'B':
			outputOptions.PrintRequestBody = true
		default:
			return errors.Errorf("Invalid char in --print value (must be consist of HB): %c", c)
		}
	}
	return nil
}

func parsePretty(pretty string, terminalInfo terminalInfo, outputOptions *output.Options) error {
	switch pretty {
	case "":
		outputOptions.EnableFormat = terminalInfo.stdoutIsTerminal
		outputOptions.EnableColor = terminalInfo.stdoutIsTerminal
	case "all":
		outputOptions.EnableFormat = true
		outputOptions.EnableColor = true
	case "format":
		outputOptions.EnableFormat = true
	case "none":
	default:
		return errors.Errorf("unknown value of --pretty: %s", pretty)
	}
	return nil
}
