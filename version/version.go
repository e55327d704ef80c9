package version

import (
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
)

const current = "0.3.0"

// Current returns current version of htest
func Current() *semver.Version {
	return semver.MustParse(current)
}

// UserAgent is the default User-Agent of synthesized requests.
func UserAgent() string {
	return "htest/" + Current().String()
}

func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "htest %s\n", Current())
}
