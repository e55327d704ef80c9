// Package fixture lays out temporary trees of test files, e.g. uploads for
// multipart requests, and removes them afterwards.
package fixture

import (
	"os"
	"path/filepath"

	"github.com/HexmosTech/htest/internal/logging"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	integrationTestDir     = "htest-integration-tests"
	defaultDirPermissions  = 0775
	defaultFilePermissions = 0664
)

type fileBuilder struct {
	path string
	body []byte
}

func (f *fileBuilder) mk() error {
	if err := mkdirAll(filepath.Dir(f.path)); err != nil {
		return err
	}
	if err := writeFile(f.path, f.body, defaultFilePermissions); err != nil {
		return errors.Wrapf(err, "could not write to file; path=%s", f.path)
	}
	return nil
}

// ProjectBuilder builds up a temporary directory of test files. Files are
// only created by Build; Cleanup deletes the whole directory.
type ProjectBuilder struct {
	name  string
	root  string
	files []fileBuilder
}

// New returns a builder rooted at <tmp>/htest-integration-tests/test-<uuid>/<name>.
func New(name string) *ProjectBuilder {
	dir := filepath.Join(IntegrationTestsDir(), "test-"+uuid.NewString())

	// A fresh uuid should never exist, but clear it out anyway.
	if err := removeAll(dir); err != nil {
		logging.Logger().Debug("failed to clear the test directory", "path", dir, "error", err)
	}

	return &ProjectBuilder{
		name: name,
		root: filepath.Join(dir, name),
	}
}

func (p *ProjectBuilder) Name() string {
	return p.name
}

// Root returns the root path of the temporary directory.
func (p *ProjectBuilder) Root() string {
	return p.root
}

// Path joins rel onto the root.
func (p *ProjectBuilder) Path(rel string) string {
	return filepath.Join(p.root, rel)
}

// File adds a file with the given contents, relative to the root.
func (p *ProjectBuilder) File(path string, body []byte) *ProjectBuilder {
	p.files = append(p.files, fileBuilder{path: p.Path(path), body: body})
	return p
}

func (p *ProjectBuilder) TextFile(path, body string) *ProjectBuilder {
	return p.File(path, []byte(body))
}

// Build creates every file added so far.
func (p *ProjectBuilder) Build() error {
	for i := range p.files {
		if err := p.files[i].mk(); err != nil {
			return err
		}
	}
	return nil
}

// MustBuild is like Build but panics if a file cannot be created.
func (p *ProjectBuilder) MustBuild() *ProjectBuilder {
	if err := p.Build(); err != nil {
		panic(err)
	}
	return p
}

// Cleanup removes the test-<uuid> directory holding the root.
func (p *ProjectBuilder) Cleanup() error {
	log := logging.Logger()
	dir := filepath.Dir(p.root)
	if err := removeAll(dir); err != nil {
		log.Debug("failed to clean up the test directory", "path", dir, "error", err)
		return err
	}
	log.Debug("successfully cleaned up the test directory", "path", dir)
	return nil
}

// IntegrationTestsDir is the directory shared by all project builders.
func IntegrationTestsDir() string {
	return filepath.Join(os.TempDir(), integrationTestDir)
}

// withLock serializes file operations under IntegrationTestsDir across
// processes; go test runs packages in parallel binaries.
func withLock(fn func() error) error {
	dir := IntegrationTestsDir()
	if err := os.MkdirAll(dir, defaultDirPermissions); err != nil {
		return errors.Wrapf(err, "could not create directory; path=%s", dir)
	}

	fl := flock.New(filepath.Join(dir, ".lock"))
	if err := fl.Lock(); err != nil {
		return errors.Wrap(err, "locking the integration tests directory")
	}
	defer fl.Unlock()

	return fn()
}

func mkdirAll(path string) error {
	return withLock(func() error {
		if err := os.MkdirAll(path, defaultDirPermissions); err != nil {
			return errors.Wrapf(err, "could not create directory; path=%s", path)
		}
		return nil
	})
}

func removeAll(path string) error {
	return withLock(func() error {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(os.RemoveAll(path), "could not remove directory; path=%s", path)
	})
}
