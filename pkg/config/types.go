package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Profile is one named API target: where to talk and how to authenticate.
type Profile struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
	FeedURL  string `yaml:"feed_url,omitempty"`
}

var ErrProfileInvalid = errors.New("profile is invalid")

// Verify checks the profile is usable before a client is built from it.
func (p Profile) Verify() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrProfileInvalid)
	}
	u, err := url.Parse(p.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: endpoint must be an http(s) url", ErrProfileInvalid)
	}
	if p.Token == "" {
		return fmt.Errorf("%w: token is required", ErrProfileInvalid)
	}
	return nil
}

// profilesFile is the YAML import format, the store's original on-disk shape
// before profiles moved into SQLite.
type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
	Default  string    `yaml:"default,omitempty"`
}
