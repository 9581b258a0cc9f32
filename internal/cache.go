package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/implint/implint/internal/types"
)

const cacheFileName = "implint_cache.gob"

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

type CacheEntry struct {
	Metadata  fileMetadata
	Issues    []tt.Issue
	CreatedAt time.Time
}

type cacheData struct {
	Entries      map[string]CacheEntry
	ConfigHashes map[string]string
}

// Cache persists lint results between runs, keyed by file content.
// The alias configuration files are tracked as dependencies: any
// change to them invalidates every entry, because the alias table the
// verdicts were computed against no longer exists.
type Cache struct {
	cacheDir string
	mutex    sync.Mutex
	data     cacheData
}

// NewCache opens (or creates) a cache under cacheDir. configFiles are
// the configuration files whose content the cached verdicts depend on.
func NewCache(cacheDir string, configFiles []string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		cacheDir: cacheDir,
		data: cacheData{
			Entries:      make(map[string]CacheEntry),
			ConfigHashes: make(map[string]string),
		},
	}
	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	current := hashFiles(configFiles)
	if !sameHashes(cache.data.ConfigHashes, current) {
		cache.data.Entries = make(map[string]CacheEntry)
	}
	cache.data.ConfigHashes = current

	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.cacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewDecoder(file).Decode(&c.data)
}

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.cacheDir, cacheFileName))
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(c.data)
}

// Set stores the issues for a file along with its current content hash.
func (c *Cache) Set(filename string, issues []tt.Issue) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	metadata, err := getFileMetadata(filename)
	if err != nil {
		return fmt.Errorf("failed to get file metadata: %w", err)
	}

	c.data.Entries[filename] = CacheEntry{
		Metadata:  metadata,
		Issues:    issues,
		CreatedAt: time.Now(),
	}
	return c.save()
}

// Get returns the cached issues for a file, if the file has not
// changed since they were stored.
func (c *Cache) Get(filename string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.data.Entries[filename]
	if !exists {
		return nil, false
	}

	metadata, err := getFileMetadata(filename)
	if err != nil || metadata != entry.Metadata {
		delete(c.data.Entries, filename)
		return nil, false
	}

	return entry.Issues, true
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data.Entries = make(map[string]CacheEntry)
	_ = c.save() // ignore error as this is a manual operation
}

func hashFiles(files []string) map[string]string {
	hashes := make(map[string]string, len(files))
	for _, file := range files {
		hash, err := getFileHash(file)
		if err != nil {
			continue // missing config file simply has no hash
		}
		hashes[file] = hash
	}
	return hashes
}

func sameHashes(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for file, hash := range a {
		if b[file] != hash {
			return false
		}
	}
	return true
}

func getFileMetadata(filename string) (fileMetadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, err
	}

	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, err
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}

func getFileHash(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
