// Package keys holds per-platform API credentials: environment defaults
// overlaid by runtime-supplied overrides. Extractors scrape public pages and
// do not consume these today; the store backs future authenticated access.
package keys

import (
	"os"
	"sync"
)

type YouTubeCredentials struct {
	APIKey string `json:"apiKey,omitempty"`
}

type RedditCredentials struct {
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

type TwitterCredentials struct {
	APIKey       string `json:"apiKey,omitempty"`
	APIKeySecret string `json:"apiKeySecret,omitempty"`
	BearerToken  string `json:"bearerToken,omitempty"`
}

// Credentials groups the optional per-platform secrets.
type Credentials struct {
	YouTube YouTubeCredentials `json:"youtube,omitempty"`
	Reddit  RedditCredentials  `json:"reddit,omitempty"`
	Twitter TwitterCredentials `json:"twitter,omitempty"`
}

// Status reports which platforms have usable credentials configured.
type Status struct {
	YouTube bool `json:"youtube"`
	Reddit  bool `json:"reddit"`
	Twitter bool `json:"twitter"`
}

// FromEnv reads the default credentials from environment variables.
func FromEnv() Credentials {
	return Credentials{
		YouTube: YouTubeCredentials{APIKey: os.Getenv("YOUTUBE_API_KEY")},
		Reddit: RedditCredentials{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		},
		Twitter: TwitterCredentials{
			APIKey:       os.Getenv("TWITTER_API_KEY"),
			APIKeySecret: os.Getenv("TWITTER_API_SECRET"),
			BearerToken:  os.Getenv("TWITTER_BEARER_TOKEN"),
		},
	}
}

// Merge overlays override on base field by field; empty override fields keep
// the base value. Pure: neither argument is modified.
func Merge(base, override Credentials) Credentials {
	out := base
	if override.YouTube.APIKey != "" {
		out.YouTube.APIKey = override.YouTube.APIKey
	}
	if override.Reddit.ClientID != "" {
		out.Reddit.ClientID = override.Reddit.ClientID
	}
	if override.Reddit.ClientSecret != "" {
		out.Reddit.ClientSecret = override.Reddit.ClientSecret
	}
	if override.Twitter.APIKey != "" {
		out.Twitter.APIKey = override.Twitter.APIKey
	}
	if override.Twitter.APIKeySecret != "" {
		out.Twitter.APIKeySecret = override.Twitter.APIKeySecret
	}
	if override.Twitter.BearerToken != "" {
		out.Twitter.BearerToken = override.Twitter.BearerToken
	}
	return out
}

// Store is the process-wide credential holder.
type Store struct {
	mu       sync.RWMutex
	base     Credentials
	override Credentials
}

func NewStore(base Credentials) *Store {
	return &Store{base: base}
}

// Effective returns the merged view: overrides win over environment defaults.
func (s *Store) Effective() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Merge(s.base, s.override)
}

// Update overlays new overrides on the existing ones.
func (s *Store) Update(o Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = Merge(s.override, o)
}

// Masked returns the effective credentials with every secret replaced by a
// placeholder, for display over the API.
func (s *Store) Masked() Credentials {
	eff := s.Effective()
	return Credentials{
		YouTube: YouTubeCredentials{APIKey: mask(eff.YouTube.APIKey)},
		Reddit: RedditCredentials{
			ClientID:     mask(eff.Reddit.ClientID),
			ClientSecret: mask(eff.Reddit.ClientSecret),
		},
		Twitter: TwitterCredentials{
			APIKey:       mask(eff.Twitter.APIKey),
			APIKeySecret: mask(eff.Twitter.APIKeySecret),
			BearerToken:  mask(eff.Twitter.BearerToken),
		},
	}
}

// Configured reports which platforms are ready for authenticated access.
func (s *Store) Configured() Status {
	eff := s.Effective()
	return Status{
		YouTube: eff.YouTube.APIKey != "",
		Reddit:  eff.Reddit.ClientID != "" && eff.Reddit.ClientSecret != "",
		Twitter: eff.Twitter.BearerToken != "" || (eff.Twitter.APIKey != "" && eff.Twitter.APIKeySecret != ""),
	}
}

func mask(v string) string {
	if v == "" {
		return ""
	}
	return "********"
}
