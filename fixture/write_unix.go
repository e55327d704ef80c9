//go:build !windows

package fixture

import (
	"os"

	"github.com/google/renameio"
)

func writeFile(name string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(name, data, perm)
}
