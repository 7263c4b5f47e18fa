package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fitctl/pkg/catalog"
)

// Codec reads and writes a snapshot file
type Codec[T any] interface {
	Read(path string) (T, error)
	Write(path string, v T) error
}

// WriteError is returned when a fetched snapshot could not be persisted
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write cache %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// DefaultDir returns ~/.fitctl_cache, creating it if needed
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".fitctl_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}
	return cacheDir, nil
}

// LoadOrPopulate returns the snapshot stored at path. If there is no readable
// snapshot, populate is called and its result written to path before being
// returned. There is no expiry; delete the file to refresh it.
func LoadOrPopulate[T any](path string, codec Codec[T], populate func() (T, error)) (T, error) {
	if _, err := os.Stat(path); err == nil {
		if v, err := codec.Read(path); err == nil {
			return v, nil
		}
	}

	v, err := populate()
	if err != nil {
		var zero T
		return zero, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		var zero T
		return zero, &WriteError{Path: path, Err: err}
	}
	if err := codec.Write(path, v); err != nil {
		var zero T
		return zero, &WriteError{Path: path, Err: err}
	}

	return v, nil
}

// Exists reports whether a snapshot file is present at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// JSON stores snapshots as indented JSON
type JSON[T any] struct{}

func (JSON[T]) Read(path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return v, nil
}

func (JSON[T]) Write(path string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isSQLite(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".db" || ext == ".sqlite" || ext == ".sqlite3"
}

// CourseCodec picks the snapshot format from the file extension
func CourseCodec(path string) Codec[[]catalog.Course] {
	if isSQLite(path) {
		return SQLiteCourses{}
	}
	return JSON[[]catalog.Course]{}
}

// SpecializationCodec picks the snapshot format from the file extension
func SpecializationCodec(path string) Codec[[]catalog.Specialization] {
	if isSQLite(path) {
		return SQLiteSpecializations{}
	}
	return JSON[[]catalog.Specialization]{}
}

// Courses loads the course snapshot at path or populates it
func Courses(path string, populate func() ([]catalog.Course, error)) ([]catalog.Course, error) {
	return LoadOrPopulate(path, CourseCodec(path), populate)
}

// Specializations loads the specialization snapshot at path or populates it
func Specializations(path string, populate func() ([]catalog.Specialization, error)) ([]catalog.Specialization, error) {
	return LoadOrPopulate(path, SpecializationCodec(path), populate)
}
