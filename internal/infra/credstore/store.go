// Package credstore provides a YAML file-based implementation of CredentialStore.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// Ensure Store implements domain.CredentialStore.
var _ domain.CredentialStore = (*Store)(nil)

// credentialData is the YAML representation of a credential (without the URL,
// which is the map key). Keys this version does not know are kept in Extra.
type credentialData struct {
	Extra map[string]any `yaml:",inline"`
	Key   string         `yaml:"key"`
	Repos []string       `yaml:"repos,omitempty"`
}

// Store implements domain.CredentialStore using a YAML file.
//
// File layout:
//
//	https://redmine.example.com:
//	  key: 0123abcd
//	  repos:
//	    - git@example.com:team/app.git
//	    - /home/me/src/scratch
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the credential file. A missing file yields an empty set;
// a malformed one returns domain.ErrParse.
func (s *Store) Load() (*domain.Credentials, error) {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(lock)

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewCredentials(), nil
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	return decode(content, s.path)
}

// Save writes creds to the credential file, replacing its content.
func (s *Store) Save(creds *domain.Credentials) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	content, err := encode(creds)
	if err != nil {
		return err
	}
	return s.write(content)
}

func decode(content []byte, path string) (*domain.Credentials, error) {
	var raw map[string]*credentialData
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: credential file %s: %w", domain.ErrParse, path, err)
	}

	creds := domain.NewCredentials()
	for url, data := range raw {
		if url == "" {
			return nil, fmt.Errorf("%w: credential file %s: empty tracker url", domain.ErrParse, path)
		}
		if data == nil {
			data = &credentialData{}
		}
		creds.Put(&domain.TrackerCredential{
			BaseURL: url,
			APIKey:  data.Key,
			Repos:   dedupe(data.Repos),
			Extra:   data.Extra,
		})
	}
	return creds, nil
}

func encode(creds *domain.Credentials) ([]byte, error) {
	raw := make(map[string]*credentialData, creds.Len())
	for _, url := range creds.URLs() {
		cred, _ := creds.Get(url)
		raw[url] = &credentialData{
			Key:   cred.APIKey,
			Repos: cred.Repos,
			Extra: cred.Extra,
		}
	}
	content, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}
	return content, nil
}

func dedupe(repos []string) []string {
	if len(repos) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(repos))
	out := make([]string, 0, len(repos))
	for _, r := range repos {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (s *Store) write(content []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}
