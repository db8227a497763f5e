package store

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// FileStore keeps every blob in one JSON file, optionally sealed with
// AES-256-GCM under a host-derived key.
type FileStore struct {
	path string
	key  []byte
}

// NewFileStore creates a plaintext store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// NewEncryptedFileStore creates an AES-256-GCM encrypted store at path.
func NewEncryptedFileStore(path string) *FileStore {
	return &FileStore{path: path, key: deriveKey()}
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

func deriveKey() []byte {
	hostname, _ := os.Hostname()
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	seed := fmt.Sprintf("pathseek-store:%s:%s", hostname, username)
	hash := sha256.Sum256([]byte(seed))
	return hash[:]
}

func (f *FileStore) load() (map[string][]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string][]byte), nil
		}
		return nil, err
	}

	if f.key != nil {
		data, err = f.decrypt(data)
		if err != nil {
			return nil, fmt.Errorf("store decrypt: %w", err)
		}
	}

	var blobs map[string][]byte
	if err := json.Unmarshal(data, &blobs); err != nil {
		return nil, fmt.Errorf("store parse: %w", err)
	}
	if blobs == nil {
		blobs = make(map[string][]byte)
	}
	return blobs, nil
}

func (f *FileStore) save(blobs map[string][]byte) error {
	data, err := json.Marshal(blobs)
	if err != nil {
		return err
	}

	if f.key != nil {
		data, err = f.encrypt(data)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(f.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (f *FileStore) decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(f.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (f *FileStore) Get(key string) ([]byte, error) {
	blobs, err := f.load()
	if err != nil {
		return nil, err
	}
	val, ok := blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return val, nil
}

func (f *FileStore) Set(key string, value []byte) error {
	blobs, err := f.load()
	if err != nil {
		return err
	}
	blobs[key] = value
	return f.save(blobs)
}

func (f *FileStore) Delete(key string) error {
	blobs, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := blobs[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	delete(blobs, key)
	return f.save(blobs)
}

func (f *FileStore) List() ([]string, error) {
	blobs, err := f.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(blobs))
	for k := range blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *FileStore) Close() error { return nil }
