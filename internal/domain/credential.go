package domain

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TrackerCredential is the API key registered for one tracker base URL together
// with the repositories that have been associated with it.
type TrackerCredential struct {
	Extra   map[string]any // Unknown keys read from disk, written back untouched
	BaseURL string
	APIKey  string
	Repos   []string
}

// HasRepo reports whether repo is associated with the credential.
func (c *TrackerCredential) HasRepo(repo string) bool {
	return slices.Contains(c.Repos, repo)
}

// AddRepo associates repo with the credential. Duplicates are ignored.
func (c *TrackerCredential) AddRepo(repo string) {
	if repo == "" || c.HasRepo(repo) {
		return
	}
	c.Repos = append(c.Repos, repo)
}

// Credentials is the in-memory content of the credential store, keyed by base URL.
type Credentials struct {
	entries map[string]*TrackerCredential
}

// NewCredentials returns an empty credential set.
func NewCredentials() *Credentials {
	return &Credentials{entries: make(map[string]*TrackerCredential)}
}

// Len returns the number of trackers known.
func (c *Credentials) Len() int {
	return len(c.entries)
}

// Get returns the credential registered for baseURL.
func (c *Credentials) Get(baseURL string) (*TrackerCredential, bool) {
	cred, ok := c.entries[baseURL]
	return cred, ok
}

// Put stores cred under its base URL, replacing any existing entry.
func (c *Credentials) Put(cred *TrackerCredential) {
	c.entries[cred.BaseURL] = cred
}

// URLs returns all base URLs in sorted order.
func (c *Credentials) URLs() []string {
	urls := make([]string, 0, len(c.entries))
	for u := range c.entries {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// FindByRepo returns the first credential (in base URL order) associated with repo.
func (c *Credentials) FindByRepo(repo string) (*TrackerCredential, bool) {
	if repo == "" {
		return nil, false
	}
	for _, u := range c.URLs() {
		if cred := c.entries[u]; cred.HasRepo(repo) {
			return cred, true
		}
	}
	return nil, false
}

// RecordAssociation upserts the credential for baseURL, overwrites its API key
// and adds repo to its repositories. Calling it repeatedly with the same
// arguments leaves the set unchanged.
func (c *Credentials) RecordAssociation(baseURL, apiKey, repo string) *TrackerCredential {
	cred, ok := c.entries[baseURL]
	if !ok {
		cred = &TrackerCredential{BaseURL: baseURL}
		c.entries[baseURL] = cred
	}
	cred.APIKey = apiKey
	cred.AddRepo(repo)
	return cred
}

// ResolvedConfig is the tracker URL and API key used for the current run.
type ResolvedConfig struct {
	BaseURL string `validate:"required,url"`
	APIKey  string `validate:"required"`
}

// Validate checks that both fields are usable.
func (r ResolvedConfig) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", ErrCredentialMissing, err.Error())
	}
	return nil
}

// IsSecure reports whether the tracker is reached over HTTPS.
func (r ResolvedConfig) IsSecure() bool {
	return strings.HasPrefix(strings.ToLower(r.BaseURL), "https://")
}

// MaskKey returns a loggable form of an API key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
