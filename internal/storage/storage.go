// Package storage defines the Storage interface — the contract any
// database backend must satisfy to work with this application.
//
// Handlers depend only on this interface, never on a concrete database,
// so swapping backends means implementing these methods and changing
// one line in main. Tests pass a fake that satisfies the interface.
package storage

import (
	"errors"

	"github.com/karuna-foundation/outreach-api/internal/types"
)

// Sentinel errors the gateway maps to specific HTTP responses.
// Everything else a Storage method returns is treated as an internal
// storage failure.
var (
	// ErrDuplicateEmail is returned by CreateUser when the email is
	// already registered (compared case-insensitively).
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials is returned by AuthenticateUser for both
	// an unknown email and a wrong password. One error for both cases
	// so responses cannot reveal which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Storage is the database contract. Any type implementing all of these
// methods satisfies the interface implicitly.
type Storage interface {
	// CreateDonation inserts a donation record and returns the
	// generated primary-key ID. Every call inserts a new row — there
	// is no deduplication of identical submissions.
	CreateDonation(d types.Donation) (int64, error)

	// GetDonations returns every donation, newest first.
	// Returns an empty slice (not nil) when there are none.
	GetDonations() ([]types.Donation, error)

	// CreateApplication inserts a scholarship application whose five
	// file-handle fields already reference stored files.
	CreateApplication(a types.ScholarshipApplication) (int64, error)

	// GetApplications returns every scholarship application, newest
	// first.
	GetApplications() ([]types.ScholarshipApplication, error)

	// CreateUser registers a new account. The email is stored
	// lowercased and must be unique; the password is stored only as a
	// one-way salted hash, never in cleartext.
	// Returns ErrDuplicateEmail if the email is taken.
	CreateUser(email, password string) (int64, error)

	// AuthenticateUser checks a login attempt against the stored
	// hash. Returns nil on a match and ErrInvalidCredentials when the
	// email is unknown or the password does not match.
	AuthenticateUser(email, password string) error
}
