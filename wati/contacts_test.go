package wati

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbenaiss/wati-mcp/config"
	"github.com/mbenaiss/wati-mcp/models"
)

func TestGetContactsPagination(t *testing.T) {
	var gotPath, gotPageSize, gotPageNumber, gotChannel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPageSize = r.URL.Query().Get("page_size")
		gotPageNumber = r.URL.Query().Get("page_number")
		gotChannel = r.URL.Query().Get("channel")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"contact_list": [{"phone": "555"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	contacts, err := client.GetContacts(context.Background(), 50, 2, "channel-1")

	assert.NoError(t, err)
	assert.Equal(t, "/api/ext/v3/contacts", gotPath)
	assert.Equal(t, "50", gotPageSize)
	assert.Equal(t, "2", gotPageNumber)
	assert.Equal(t, "channel-1", gotChannel)
	assert.Len(t, contacts, 1)
	assert.Equal(t, "555", contacts[0].Phone)
}

func TestGetContactsDefaultsPagination(t *testing.T) {
	var gotPageSize, gotPageNumber string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPageSize = r.URL.Query().Get("page_size")
		gotPageNumber = r.URL.Query().Get("page_number")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"contact_list": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetContacts(context.Background(), 0, -3, "")

	assert.NoError(t, err)
	assert.Equal(t, "20", gotPageSize)
	assert.Equal(t, "1", gotPageNumber)
}

func TestSearchContacts(t *testing.T) {
	var gotPageSize string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPageSize = r.URL.Query().Get("page_size")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"contact_list": [
			{"phone": "555100", "name": "Alice"},
			{"phone": "555200", "name": "Bob"},
			{"phone": "777300", "name": "Carol", "wa_id": "ALI-9"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	byName, err := client.SearchContacts(context.Background(), "ali")
	assert.NoError(t, err)
	assert.Equal(t, "100", gotPageSize)
	assert.Len(t, byName, 2)
	assert.Equal(t, "Alice", byName[0].Name)
	assert.Equal(t, "Carol", byName[1].Name)

	byPhone, err := client.SearchContacts(context.Background(), "5552")
	assert.NoError(t, err)
	assert.Len(t, byPhone, 1)
	assert.Equal(t, "Bob", byPhone[0].Name)

	all, err := client.SearchContacts(context.Background(), "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := client.SearchContacts(context.Background(), "zzz")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/contacts/P:555", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"phone": "555", "name": "Alice"}`))
	}))
	defer server.Close()

	client := NewClient(config.Config{BaseURL: server.URL, TenantID: "P", AuthToken: "test-token"})

	contact, err := client.GetContact(context.Background(), "555")

	assert.NoError(t, err)
	assert.Equal(t, "Alice", contact.Name)
}

func TestGetContactNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"error": "contact not found"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	contact, err := client.GetContact(context.Background(), "555")

	assert.Error(t, err)
	assert.Nil(t, contact)
	assert.Contains(t, err.Error(), "not found")
}

func TestAddContact(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"phone": "555", "name": "Alice"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	contact, err := client.AddContact(context.Background(), "555", "Alice", []models.CustomParam{{Name: "city", Value: "Lisbon"}})

	assert.NoError(t, err)
	assert.Equal(t, "555", contact.Phone)
	assert.Equal(t, "555", gotBody["whatsapp_number"])
	assert.Equal(t, "Alice", gotBody["name"])
	assert.NotNil(t, gotBody["custom_params"])
}

func TestUpdateContactsPrefixesTargets(t *testing.T) {
	var gotBody struct {
		Contacts []models.ContactUpdate `json:"contacts"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"contact_list": [{"phone": "555"}]}`))
	}))
	defer server.Close()

	client := NewClient(config.Config{BaseURL: server.URL, TenantID: "P", AuthToken: "test-token"})

	updated, err := client.UpdateContacts(context.Background(), []models.ContactUpdate{
		{Target: "555", CustomParams: []models.CustomParam{{Name: "plan", Value: "pro"}}},
		{Target: "Q:666"},
	})

	assert.NoError(t, err)
	assert.Len(t, updated, 1)
	assert.Equal(t, "P:555", gotBody.Contacts[0].Target)
	assert.Equal(t, "Q:666", gotBody.Contacts[1].Target)
}

func TestContactCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/contacts/count", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"count": 42}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	count, err := client.ContactCount(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestAssignContactTeams(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/ext/v3/contacts/teams", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, err := client.AssignContactTeams(context.Background(), "555", []string{"Support", "Sales"})

	assert.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, "555", gotBody["target"])
	assert.Equal(t, []interface{}{"Support", "Sales"}, gotBody["teams"])
}
