package system

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/img2roi/internal/source"
)

// FindLatestImage returns the most recently modified image directly inside dir.
func FindLatestImage(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !source.IsImage(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no images found in %s", dir)
	}

	return latestFile, nil
}
