package config

import (
	"errors"

	"github.com/tommv/lbman/pkg/api"
)

// Sentinel error for a profile that does not exist in the store.
var ErrProfileNotFound = errors.New("profile not found")

// Store persists API profiles and small offline caches for the console.
type Store interface {
	// Profile operations
	AddProfile(p Profile) error
	GetProfile(name string) (Profile, bool)
	ListProfiles() []Profile
	DeleteProfile(name string) error

	// Default profile management
	SetDefaultProfile(name string) error
	GetDefaultProfile() (Profile, bool)

	// Invoice cache, so the invoices view can fall back to the last
	// fetched rows when the API is unreachable.
	CacheInvoices(profile string, invoices []api.Invoice) error
	CachedInvoices(profile string) ([]api.Invoice, error)

	Close() error
}

// NewStore opens the default store (SQLite under ~/.lbman).
func NewStore() (Store, error) {
	return NewSQLiteStore("")
}
