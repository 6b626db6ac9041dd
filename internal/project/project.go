package project

import (
	"errors"
	"os"
	"path/filepath"
)

const manifestFilename = "Cargo.toml"

var ErrRootNotFound = errors.New("project root not found")

// Project is a crate rooted at the directory holding its Cargo.toml.
type Project struct {
	Manifest  *Manifest
	Directory string
}

// FindFirstFileInAncestors walks from dir (included) up to the filesystem
// root and returns the first existing regular file with the given name.
func FindFirstFileInAncestors(dir, filename string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, filename)
		if isRegularFile(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// FromDir locates the project containing dir by searching ancestor
// directories for a manifest, then parses it.
func FromDir(dir string) (*Project, error) {
	manifestPath, ok := FindFirstFileInAncestors(dir, manifestFilename)
	if !ok {
		return nil, ErrRootNotFound
	}
	manifest, err := ManifestFromFile(manifestPath)
	if err != nil {
		return nil, err
	}
	return &Project{Manifest: manifest, Directory: filepath.Dir(manifestPath)}, nil
}

// LibEntryPath resolves the library entry file, defaulting to src/lib.rs.
// Absence of the file is a valid outcome, not an error.
func (p *Project) LibEntryPath() (string, bool) {
	rel := p.Manifest.LibPath
	if rel == "" {
		rel = filepath.Join("src", "lib.rs")
	}
	return p.resolve(rel)
}

// BinDefaultEntryPath resolves the default binary entry file. A configured
// [lib] path takes precedence; only the fallback differs from LibEntryPath.
func (p *Project) BinDefaultEntryPath() (string, bool) {
	rel := p.Manifest.LibPath
	if rel == "" {
		rel = filepath.Join("src", "main.rs")
	}
	return p.resolve(rel)
}

// BinEntryPath resolves the entry file of a named [[bin]] target.
func (p *Project) BinEntryPath(name string) (string, bool) {
	rel, ok := p.Manifest.BinPath[name]
	if !ok {
		return "", false
	}
	return p.resolve(rel)
}

// EffectiveReadmePath returns where the README lives or should be created:
// the configured-or-default relative path joined onto the project root, with
// no existence check. Callers that only read use ReadmePath instead.
func (p *Project) EffectiveReadmePath() string {
	rel := p.Manifest.ReadmePath
	if rel == "" {
		rel = "README.md"
	}
	return filepath.Join(p.Directory, rel)
}

// ReadmePath resolves the README, defaulting to README.md. Absence of the
// file is a valid outcome, not an error.
func (p *Project) ReadmePath() (string, bool) {
	path := p.EffectiveReadmePath()
	if !isRegularFile(path) {
		return "", false
	}
	return path, true
}

// resolve joins rel onto the project root and confirms it names an existing
// regular file.
func (p *Project) resolve(rel string) (string, bool) {
	path := filepath.Join(p.Directory, rel)
	if !isRegularFile(path) {
		return "", false
	}
	return path, true
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
