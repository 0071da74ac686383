package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader decodes TOML configuration files onto a destination
// struct, leaving fields absent from the file untouched.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load decodes the configured path onto dst. A missing file is not an
// error; the returned bool reports whether a file was actually read.
func (l *TOMLLoader) Load(dst any) (bool, error) {
	return l.LoadFrom(l.path, dst)
}

// LoadFrom decodes a specific path onto dst.
func (l *TOMLLoader) LoadFrom(path string, dst any) (bool, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := l.decode(path, data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// LoadFromReader decodes configuration from an io.Reader onto dst.
func (l *TOMLLoader) LoadFromReader(r io.Reader, dst any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return l.decode("<reader>", data, dst)
}

func (l *TOMLLoader) decode(source string, data []byte, dst any) error {
	if err := toml.Unmarshal(data, dst); err != nil {
		return &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	return nil
}
