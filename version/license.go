package version

import (
	"fmt"
	"io"
)

type License struct {
	ModuleName  string
	LicenseName string
	Link        string
}

var Licenses = []License{
	{
		ModuleName:  "htest",
		LicenseName: "MIT License",
		Link:        "https://github.com/HexmosTech/htest/blob/master/LICENSE",
	},
	{
		ModuleName:  "Go",
		LicenseName: "BSD License",
		Link:        "https://golang.org/LICENSE",
	},
	{
		ModuleName:  "aurora",
		LicenseName: "WTFPL",
		Link:        "https://github.com/logrusorgru/aurora/blob/master/LICENSE",
	},
	{
		ModuleName:  "go-isatty",
		LicenseName: "MIT License",
		Link:        "https://github.com/mattn/go-isatty/blob/master/LICENSE",
	},
	{
		ModuleName:  "getopt",
		LicenseName: "BSD License",
		Link:        "https://github.com/pborman/getopt/blob/master/LICENSE",
	},
	{
		ModuleName:  "errors",
		LicenseName: "BSD License",
		Link:        "https://github.com/pkg/errors/blob/master/LICENSE",
	},
	{
		ModuleName:  "bytefmt",
		LicenseName: "Apache License",
		Link:        "https://github.com/cloudfoundry/bytefmt/blob/master/LICENSE",
	},
	{
		ModuleName:  "viper",
		LicenseName: "MIT License",
		Link:        "https://github.com/spf13/viper/blob/master/LICENSE",
	},
	{
		ModuleName:  "semver",
		LicenseName: "MIT License",
		Link:        "https://github.com/Masterminds/semver/blob/master/LICENSE.txt",
	},
	{
		ModuleName:  "uuid",
		LicenseName: "BSD License",
		Link:        "https://github.com/google/uuid/blob/master/LICENSE",
	},
	{
		ModuleName:  "flock",
		LicenseName: "BSD License",
		Link:        "https://github.com/gofrs/flock/blob/master/LICENSE",
	},
	{
		ModuleName:  "renameio",
		LicenseName: "Apache License",
		Link:        "https://github.com/google/renameio/blob/master/LICENSE",
	},
	{
		ModuleName:  "x/exp",
		LicenseName: "BSD License",
		Link:        "https://cs.opensource.google/go/x/exp/+/master:LICENSE",
	},
}

func PrintLicenses(w io.Writer) {
	for _, license := range Licenses {
		fmt.Fprintf(w, "%s:\n  %s\n  %s\n\n",
			license.ModuleName,
			license.LicenseName,
			license.Link,
		)
	}
}
