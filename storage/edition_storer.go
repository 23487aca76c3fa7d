package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// outputDirForStorage defines the base directory for exported editions.
const outputDirForStorage = "_output"

// EditionStorer saves exported dashboard editions.
type EditionStorer interface {
	// Store saves body under kind/fileName and returns the path relative to the storer's base.
	Store(kind, fileName string, body []byte) (relativeStoragePath string, err error)
}

// LocalFileStorer implements EditionStorer on the local file system.
type LocalFileStorer struct {
	basePath string
}

// NewLocalFileStorer creates a new LocalFileStorer.
// If basePath is empty, it defaults to outputDirForStorage.
func NewLocalFileStorer(basePath string) *LocalFileStorer {
	if basePath == "" {
		basePath = outputDirForStorage
	}
	return &LocalFileStorer{basePath: basePath}
}

// BasePath returns the directory every stored file lives under.
func (lfs *LocalFileStorer) BasePath() string {
	return lfs.basePath
}

// Store writes body to <basePath>/<kind>/<fileName>.
func (lfs *LocalFileStorer) Store(kind, fileName string, body []byte) (string, error) {
	if kind == "" || fileName == "" {
		return "", fmt.Errorf("kind and fileName cannot be empty for storing an edition")
	}
	if strings.ContainsAny(kind+fileName, `/\`) || strings.Contains(kind+fileName, "..") {
		return "", fmt.Errorf("invalid storage name %q/%q", kind, fileName)
	}

	relativeStoragePath := filepath.Join(kind, fileName)
	fullStorageDir := filepath.Join(lfs.basePath, kind)
	fullStoragePath := filepath.Join(fullStorageDir, fileName)

	if err := os.MkdirAll(fullStorageDir, os.ModePerm); err != nil {
		log.Printf("ERROR (LocalFileStorer): Failed to create storage directory '%s': %v", fullStorageDir, err)
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	if err := os.WriteFile(fullStoragePath, body, 0644); err != nil {
		log.Printf("ERROR (LocalFileStorer): Failed to write edition to '%s': %v", fullStoragePath, err)
		return "", fmt.Errorf("failed to save edition: %w", err)
	}

	log.Printf("INFO (LocalFileStorer): Saved edition to: %s (%d bytes)", fullStoragePath, len(body))
	return relativeStoragePath, nil
}
