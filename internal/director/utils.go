package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// GenerateDumpPath creates a timestamped dump filename in dir
func GenerateDumpPath(dir, kind string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", kind, timestamp))
}

// FindLatestDeck finds the most recently modified deck in dir
func FindLatestDeck(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read deck directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var decks []candidate
	for _, entry := range entries {
		if entry.IsDir() || !isDeckFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		decks = append(decks, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(decks) == 0 {
		return "", fmt.Errorf("no deck files found in %s", dir)
	}

	// Newest first
	sort.Slice(decks, func(i, j int) bool {
		return decks[i].modTime.After(decks[j].modTime)
	})

	return decks[0].path, nil
}

func isDeckFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// ResolveDeckPath accepts a deck file or a directory holding decks.
func ResolveDeckPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return FindLatestDeck(path)
	}
	return path, nil
}
