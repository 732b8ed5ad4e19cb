package meta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchLead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lg-123", r.URL.Path)
		assert.Equal(t, "tok-abc", r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "lg-123",
			"field_data": [
				{"name": "full_name", "values": ["Asha Patel"]},
				{"name": "phone_number", "values": ["+919876543210"]},
				{"name": "email", "values": ["asha@example.com"]}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	data, err := c.FetchLead(context.Background(), "lg-123", "tok-abc")

	require.NoError(t, err)
	contact := data.Contact()
	assert.Equal(t, "Asha", contact.FirstName)
	assert.Equal(t, "Patel", contact.LastName)
	assert.Equal(t, "+919876543210", contact.Phone)
	assert.Equal(t, "asha@example.com", contact.Email)
}

func TestFetchLeadPlatformError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchLead(context.Background(), "lg-123", "bad-token")

	assert.Error(t, err)
}

func TestFetchLeadMissingToken(t *testing.T) {
	c := NewClient("http://unused", 5*time.Second)

	_, err := c.FetchLead(context.Background(), "lg-123", "")

	assert.Error(t, err, "missing per-company credential must fail the fetch")
}

func TestContactDiscreteFieldsWinOverFullName(t *testing.T) {
	data := &LeadData{FieldData: []Field{
		{Name: "first_name", Values: []string{"Asha"}},
		{Name: "last_name", Values: []string{"Patel"}},
		{Name: "full_name", Values: []string{"Someone Else"}},
	}}

	contact := data.Contact()

	assert.Equal(t, "Asha", contact.FirstName)
	assert.Equal(t, "Patel", contact.LastName)
}

func TestContactFullNameOnly(t *testing.T) {
	data := &LeadData{FieldData: []Field{
		{Name: "full_name", Values: []string{"Asha Rani Patel"}},
		{Name: "phone_number", Values: []string{"9876543210"}},
	}}

	contact := data.Contact()

	assert.Equal(t, "Asha", contact.FirstName)
	assert.Equal(t, "Rani Patel", contact.LastName)
}
