package donation_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karuna-foundation/outreach-api/internal/http/handlers/donation"
	"github.com/karuna-foundation/outreach-api/internal/storage"
	"github.com/karuna-foundation/outreach-api/internal/types"
)

// fakeStore records donations in memory. Embedding the interface keeps
// the fake small; methods the handler never calls would just panic.
type fakeStore struct {
	storage.Storage
	donations []types.Donation
	failWith  error
}

func (f *fakeStore) CreateDonation(d types.Donation) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.donations = append(f.donations, d)
	return int64(len(f.donations)), nil
}

func (f *fakeStore) GetDonations() ([]types.Donation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]types.Donation{}, f.donations...), nil
}

func validBody() string {
	return `{
		"name": "Asha Verma",
		"email": "asha@example.org",
		"amount": 2500,
		"donation_type": "One-Time",
		"cause": "Education",
		"fund_type": "General",
		"message": "Keep it up",
		"communication": "Email",
		"interaction": "Yes",
		"mentorship": "No",
		"tax_exemption": "Yes",
		"motivation": "Giving back"
	}`
}

func post(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/donate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestDonateSuccess(t *testing.T) {
	store := &fakeStore{}
	rec := post(t, donation.New(store), validBody())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Donation saved successfully", resp["message"])
	assert.Equal(t, float64(1), resp["donationId"])

	require.Len(t, store.donations, 1)
	assert.Equal(t, "Asha Verma", store.donations[0].Name)
	assert.Equal(t, float64(2500), store.donations[0].Amount)
}

func TestDonateMissingFieldNamed(t *testing.T) {
	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(validBody()), &fields))
	delete(fields, "amount")
	body, err := json.Marshal(fields)
	require.NoError(t, err)

	store := &fakeStore{}
	rec := post(t, donation.New(store), string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing: amount")
	assert.Empty(t, store.donations, "no record on validation failure")
}

func TestDonateInvalidEnumValue(t *testing.T) {
	body := strings.Replace(validBody(), `"One-Time"`, `"Weekly"`, 1)

	store := &fakeStore{}
	rec := post(t, donation.New(store), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid value for donation_type")
	assert.Empty(t, store.donations)
}

func TestDonateNegativeAmountRejected(t *testing.T) {
	body := strings.Replace(validBody(), `"amount": 2500`, `"amount": -5`, 1)

	store := &fakeStore{}
	rec := post(t, donation.New(store), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid value for amount")
}

func TestDonateEmptyBody(t *testing.T) {
	rec := post(t, donation.New(&fakeStore{}), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body is empty")
}

func TestDonateStorageFailureIsGeneric(t *testing.T) {
	store := &fakeStore{failWith: errors.New("disk I/O error on page 7")}
	rec := post(t, donation.New(store), validBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal error")
	// Backend detail stays in the server log, never in the body.
	assert.NotContains(t, rec.Body.String(), "disk I/O")
}

// Replaying the same submission creates two records; nothing dedupes.
func TestDonateReplayCreatesTwoRecords(t *testing.T) {
	store := &fakeStore{}
	handler := donation.New(store)

	require.Equal(t, http.StatusOK, post(t, handler, validBody()).Code)
	require.Equal(t, http.StatusOK, post(t, handler, validBody()).Code)

	assert.Len(t, store.donations, 2)
}

func TestGetDonationsEmptyList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/donations", nil)
	rec := httptest.NewRecorder()
	donation.GetList(&fakeStore{})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
