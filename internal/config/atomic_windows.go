//go:build windows

package config

import "os"

// atomicWriteFile writes data in place; renameio has no Windows support.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
