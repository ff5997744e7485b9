package voice

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrCacheMiss is returned when no audio file exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// keyLength is the number of hex characters kept from the text hash.
const keyLength = 16

// Cache is a write-once, read-many disk memoization of synthesized audio.
// Entries are never invalidated; growth is unbounded unless MaxBytes is set.
type Cache struct {
	Dir string
	// MaxBytes caps the cache size when positive. Zero preserves the
	// original unbounded behavior.
	MaxBytes int64
}

// NewCache creates the cache directory if needed.
func NewCache(dir string, maxBytes int64) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("unable to create cache directory: %w", err)
	}
	return &Cache{Dir: dir, MaxBytes: maxBytes}, nil
}

// Key derives the deterministic cache key for a text: a truncated hex
// SHA-256 of the exact bytes.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:keyLength]
}

// Path returns the audio file path for a key.
func (c *Cache) Path(key string) string {
	return filepath.Join(c.Dir, key+".mp3")
}

// Get returns the cached audio file path for a text, or ErrCacheMiss.
func (c *Cache) Get(text string) (string, error) {
	path := c.Path(Key(text))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrCacheMiss
	}
	return path, nil
}

// Put writes the audio for a text and returns the file path. When a size cap
// is configured, oldest entries are pruned afterwards.
func (c *Cache) Put(text string, audio []byte) (string, error) {
	path := c.Path(Key(text))
	if err := os.WriteFile(path, audio, 0o600); err != nil {
		return "", fmt.Errorf("unable to write cache file: %w", err)
	}
	if c.MaxBytes > 0 {
		c.prune()
	}
	return path, nil
}

// Info reports the number of cached entries and their total size.
func (c *Cache) Info() (count int, totalBytes int64, err error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to read cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".mp3" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		count++
		totalBytes += info.Size()
	}
	return count, totalBytes, nil
}

// prune removes oldest entries until the cache fits under MaxBytes.
func (c *Cache) prune() {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return
	}

	type cacheFile struct {
		path    string
		size    int64
		modTime int64
	}
	var files []cacheFile
	var total int64
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".mp3" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, cacheFile{
			path:    filepath.Join(c.Dir, entry.Name()),
			size:    info.Size(),
			modTime: info.ModTime().UnixNano(),
		})
		total += info.Size()
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modTime < files[j].modTime })
	for _, f := range files {
		if total <= c.MaxBytes {
			break
		}
		if err := os.Remove(f.path); err == nil {
			total -= f.size
		}
	}
}
