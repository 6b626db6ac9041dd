package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

var (
	ErrManifestRead  = errors.New("failed to read manifest")
	ErrManifestParse = errors.New("failed to parse manifest")
)

// Manifest is the subset of Cargo.toml this tool cares about: where the
// library and binary entry files live and where the README is. Empty paths
// mean the manifest does not configure them and the conventional default
// applies at resolution time.
type Manifest struct {
	LibPath    string
	ReadmePath string
	BinPath    map[string]string
}

// manifestFile mirrors the raw TOML layout of Cargo.toml.
type manifestFile struct {
	Package struct {
		Readme string `toml:"readme"`
	} `toml:"package"`
	Lib struct {
		Path string `toml:"path"`
	} `toml:"lib"`
	Bin []struct {
		Name string `toml:"name"`
		Path string `toml:"path"`
	} `toml:"bin"`
}

// ParseManifest decodes manifest TOML. [[bin]] entries missing a name or a
// path are skipped, as cargo itself fills those in from conventions this
// tool does not replicate.
func ParseManifest(data []byte) (*Manifest, error) {
	var raw manifestFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}

	m := &Manifest{
		LibPath:    filepath.FromSlash(raw.Lib.Path),
		ReadmePath: filepath.FromSlash(raw.Package.Readme),
		BinPath:    make(map[string]string),
	}
	for _, bin := range raw.Bin {
		if bin.Name == "" || bin.Path == "" {
			continue
		}
		m.BinPath[bin.Name] = filepath.FromSlash(bin.Path)
	}

	return m, nil
}

// ManifestFromFile reads and parses the manifest at path.
func ManifestFromFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrManifestRead, path)
	}
	return ParseManifest(data)
}
