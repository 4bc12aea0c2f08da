//go:build !unix

package mmap

import "os"

// MapFile reads the entire file when mmap is not available.
func MapFile(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
