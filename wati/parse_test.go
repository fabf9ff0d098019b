package wati

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mbenaiss/wati-mcp/models"
)

func TestParseContactMinimal(t *testing.T) {
	contact, err := parseContact(json.RawMessage(`{"phone": "123"}`))

	assert.NoError(t, err)
	assert.Equal(t, "123", contact.Phone)
	assert.Empty(t, contact.Name)
	assert.Empty(t, contact.ID)
	assert.Empty(t, contact.WaID)
	assert.Nil(t, contact.OptedIn)
	assert.Nil(t, contact.AllowBroadcast)
	assert.Nil(t, contact.Teams)
	assert.Nil(t, contact.CustomParams)
}

func TestParseContactCustomParams(t *testing.T) {
	raw := json.RawMessage(`{
		"phone": "123",
		"name": "Alice",
		"custom_params": [
			{"name": "city", "value": "Lisbon"},
			{"name": "plan", "value": "pro"},
			{"name": "", "value": "dropped"}
		]
	}`)

	contact, err := parseContact(raw)

	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"city": "Lisbon", "plan": "pro"}, contact.CustomParams)
}

func TestParseContactsEnvelopeKeys(t *testing.T) {
	fromContactList := parseContacts(json.RawMessage(`{"contact_list": [{"phone": "1"}, {"phone": "2"}]}`))
	fromContacts := parseContacts(json.RawMessage(`{"contacts": [{"phone": "3"}]}`))

	assert.Len(t, fromContactList, 2)
	assert.Equal(t, "1", fromContactList[0].Phone)
	assert.Len(t, fromContacts, 1)
	assert.Equal(t, "3", fromContacts[0].Phone)
}

func TestParseContactsSkipsUnparseableEntries(t *testing.T) {
	contacts := parseContacts(json.RawMessage(`{"contact_list": [{"phone": "1"}, "not-an-object", {"phone": "2"}]}`))

	assert.Len(t, contacts, 2)
	assert.Equal(t, "1", contacts[0].Phone)
	assert.Equal(t, "2", contacts[1].Phone)
}

func TestParseMessagesEnvelopeKeys(t *testing.T) {
	fromMessageList := parseMessages(json.RawMessage(`{"message_list": [{"id": "m1", "text": "hi", "owner": true}]}`))
	fromMessages := parseMessages(json.RawMessage(`{"messages": [{"id": "m2", "text": "yo"}]}`))

	assert.Len(t, fromMessageList, 1)
	assert.Equal(t, "m1", fromMessageList[0].ID)
	assert.True(t, fromMessageList[0].Owner)
	assert.Len(t, fromMessages, 1)
	assert.Equal(t, "m2", fromMessages[0].ID)
	assert.False(t, fromMessages[0].Owner)
}

func TestParseTimestampFormats(t *testing.T) {
	want := time.Date(2023, 1, 2, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, want, parseTimestamp("2023-01-02T15:04:05Z"))
	assert.Equal(t, want, parseTimestamp("2023-01-02T15:04:05"))
	assert.Equal(t, want, parseTimestamp("2023-01-02 15:04:05"))
	assert.Equal(t, time.Unix(1672671845, 0), parseTimestamp(float64(1672671845)))
}

func TestParseTimestampFallsBackToNow(t *testing.T) {
	assert.WithinDuration(t, time.Now(), parseTimestamp("not a date"), time.Minute)
	assert.WithinDuration(t, time.Now(), parseTimestamp(nil), time.Minute)
}

func TestParseMessagePrefersCreatedOverTimestamp(t *testing.T) {
	message, err := parseMessage(json.RawMessage(`{"id": "m1", "created": "2023-01-02T15:04:05Z", "timestamp": 1500000000}`))

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 2, 15, 4, 5, 0, time.UTC), message.Timestamp)
}

func TestParseSendResponse(t *testing.T) {
	cases := []struct {
		name        string
		payload     string
		wantSuccess bool
		wantMessage string
	}{
		{"explicit error", `{"error": "bad number"}`, false, "bad number"},
		{"message with id", `{"message": {"id": "m1"}}`, true, "Message sent (id: m1)"},
		{"error wins over message", `{"error": "rejected", "message": {"id": "m1"}}`, false, "rejected"},
		{"success with broadcast", `{"success": true, "broadcast_id": "b1"}`, true, "b1"},
		{"bare success", `{"success": true}`, true, "Success"},
		{"result acknowledgement", `{"result": true}`, true, "Success"},
		{"string message fallback", `{"message": "rate limited"}`, false, "rate limited"},
		{"empty payload", `{}`, false, "Unknown response"},
		{"false error ignored", `{"error": false, "result": true}`, true, "Success"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			success, message := parseSendResponse(json.RawMessage(tc.payload))

			assert.Equal(t, tc.wantSuccess, success)
			assert.Equal(t, tc.wantMessage, message)
		})
	}
}

func TestErrorField(t *testing.T) {
	text, found := errorField(json.RawMessage(`{"error": "contact not found"}`))
	assert.True(t, found)
	assert.Equal(t, "contact not found", text)

	_, found = errorField(json.RawMessage(`{"phone": "123"}`))
	assert.False(t, found)
}

func TestResultField(t *testing.T) {
	assert.True(t, resultField(json.RawMessage(`{"result": true}`)))
	assert.False(t, resultField(json.RawMessage(`{"result": false}`)))
	assert.False(t, resultField(json.RawMessage(`{}`)))
}

func TestParseTemplatesEnvelopeKeys(t *testing.T) {
	fromMessageTemplates := parseTemplates(json.RawMessage(`{"message_templates": [{"id": "t1", "name": "welcome"}]}`))
	fromTemplates := parseTemplates(json.RawMessage(`{"templates": [{"id": "t2", "name": "receipt"}]}`))

	assert.Equal(t, []models.Template{{ID: "t1", Name: "welcome"}}, fromMessageTemplates)
	assert.Equal(t, []models.Template{{ID: "t2", Name: "receipt"}}, fromTemplates)
}
