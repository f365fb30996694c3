package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func SaveJson(path string, data interface{}) error {
	bs, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(bs)
		return err
	})
}

// LoadYaml decodes the file at path into v. JSON files are accepted as well.
func LoadYaml(path string, v interface{}) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(bs, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteFileAtomic writes to a temporary file next to path and renames it into place,
// creating the parent directory if needed.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
