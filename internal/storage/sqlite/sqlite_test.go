package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karuna-foundation/outreach-api/internal/config"
	"github.com/karuna-foundation/outreach-api/internal/storage"
	"github.com/karuna-foundation/outreach-api/internal/storage/sqlite"
	"github.com/karuna-foundation/outreach-api/internal/types"
)

func newStore(t *testing.T) *sqlite.SQLite {
	t.Helper()
	cfg := &config.Config{
		StoragePath: filepath.Join(t.TempDir(), "outreach.db"),
	}
	store, err := sqlite.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Db.Close() })
	return store
}

func sampleDonation() types.Donation {
	return types.Donation{
		Name:          "Asha Verma",
		Email:         "asha@example.org",
		Amount:        2500,
		DonationType:  "One-Time",
		Cause:         "Education",
		FundType:      "General",
		Message:       "Keep it up",
		Communication: "Email",
		Interaction:   "Yes",
		Mentorship:    "No",
		TaxExemption:  "Yes",
		Motivation:    "Giving back",
	}
}

func TestCreateAndListDonations(t *testing.T) {
	store := newStore(t)

	id, err := store.CreateDonation(sampleDonation())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	donations, err := store.GetDonations()
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, "Asha Verma", donations[0].Name)
	assert.Equal(t, float64(2500), donations[0].Amount)
	assert.NotEmpty(t, donations[0].CreatedAt)
}

// Replaying an identical submission inserts a second row: the system
// performs no deduplication.
func TestIdenticalDonationsInsertDistinctRows(t *testing.T) {
	store := newStore(t)

	first, err := store.CreateDonation(sampleDonation())
	require.NoError(t, err)
	second, err := store.CreateDonation(sampleDonation())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	donations, err := store.GetDonations()
	require.NoError(t, err)
	assert.Len(t, donations, 2)
}

func TestGetDonationsEmpty(t *testing.T) {
	store := newStore(t)

	donations, err := store.GetDonations()
	require.NoError(t, err)
	assert.NotNil(t, donations)
	assert.Empty(t, donations)
}

func TestCreateAndListApplications(t *testing.T) {
	store := newStore(t)

	app := types.ScholarshipApplication{
		FullName:          "Ravi Kumar",
		Email:             "ravi@example.org",
		Phone:             "9876543210",
		Grade:             "10",
		Essay:             "I want to keep studying.",
		AdhaarCard:        "h1.pdf",
		RationCard:        "h2.pdf",
		IncomeCertificate: "h3.pdf",
		Marksheet:         "h4.pdf",
		AttendanceSheet:   "h5.pdf",
		FatherName:        "Suresh Kumar",
		AnnualIncome:      120000,
	}

	id, err := store.CreateApplication(app)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	apps, err := store.GetApplications()
	require.NoError(t, err)
	require.Len(t, apps, 1)

	got := apps[0]
	handles := []string{
		got.AdhaarCard, got.RationCard, got.IncomeCertificate,
		got.Marksheet, got.AttendanceSheet,
	}
	for _, h := range handles {
		assert.NotEmpty(t, h)
	}
	assert.Equal(t, float64(120000), got.AnnualIncome)
}

func TestCreateUserHashesPassword(t *testing.T) {
	store := newStore(t)

	_, err := store.CreateUser("dana@example.org", "s3cret-pass")
	require.NoError(t, err)

	var stored string
	err = store.Db.QueryRow(
		"SELECT password_hash FROM users WHERE email = ?", "dana@example.org",
	).Scan(&stored)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", stored, "password must never be stored in cleartext")
	assert.NotEmpty(t, stored)
}

func TestDuplicateEmailRejectedCaseInsensitively(t *testing.T) {
	store := newStore(t)

	_, err := store.CreateUser("dana@example.org", "s3cret-pass")
	require.NoError(t, err)

	_, err = store.CreateUser("Dana@Example.ORG", "other-pass")
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestAuthenticateUser(t *testing.T) {
	store := newStore(t)

	_, err := store.CreateUser("dana@example.org", "s3cret-pass")
	require.NoError(t, err)

	// Correct credentials, any email casing.
	assert.NoError(t, store.AuthenticateUser("Dana@example.org", "s3cret-pass"))

	// Wrong password and unknown email yield the same error, so a
	// caller cannot learn which check failed.
	wrongPass := store.AuthenticateUser("dana@example.org", "wrong")
	unknown := store.AuthenticateUser("nobody@example.org", "s3cret-pass")
	assert.ErrorIs(t, wrongPass, storage.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, storage.ErrInvalidCredentials)
}
