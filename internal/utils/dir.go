package utils

import (
	"os"
)

// IsFile tests wether given path exists and is a file
func IsFile(filePath string) bool {
	file, err := os.Stat(filePath)

	if err != nil {
		return false
	}

	return !file.IsDir()
}

// IsDirectory tests wether given path exists and is a directory
func IsDirectory(dirPath string) bool {
	dir, err := os.Stat(dirPath)

	if err != nil {
		return false
	}

	return dir.IsDir()
}

// EnsureDirectory creates the directory (and all parents) if it doesn't exist yet.
func EnsureDirectory(dirPath string) error {
	if IsDirectory(dirPath) {
		return nil
	}
	return os.MkdirAll(dirPath, os.ModePerm)
}
