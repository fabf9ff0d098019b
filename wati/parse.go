package wati

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mbenaiss/wati-mcp/models"
)

// wireContact mirrors the contact shape the API returns. Custom
// parameters arrive as a name/value list rather than a map.
type wireContact struct {
	Phone          string               `json:"phone"`
	Name           string               `json:"name"`
	ID             string               `json:"id"`
	WaID           string               `json:"wa_id"`
	Photo          string               `json:"photo"`
	Created        string               `json:"created"`
	LastUpdated    string               `json:"last_updated"`
	ContactStatus  string               `json:"contact_status"`
	Source         string               `json:"source"`
	ChannelID      string               `json:"channel_id"`
	OptedIn        *bool                `json:"opted_in"`
	AllowBroadcast *bool                `json:"allow_broadcast"`
	AllowSMS       *bool                `json:"allow_sms"`
	Teams          []string             `json:"teams"`
	Segments       []string             `json:"segments"`
	CustomParams   []models.CustomParam `json:"custom_params"`
	ChannelType    string               `json:"channel_type"`
	DisplayName    string               `json:"display_name"`
}

// wireMessage mirrors the message shape the API returns. The timestamp
// arrives either as a string in one of several formats or as a numeric
// epoch, depending on the endpoint.
type wireMessage struct {
	ID             string      `json:"id"`
	Text           string      `json:"text"`
	Created        interface{} `json:"created"`
	Timestamp      interface{} `json:"timestamp"`
	Owner          bool        `json:"owner"`
	Type           string      `json:"type"`
	Status         string      `json:"status"`
	AssignedID     string      `json:"assigned_id"`
	OperatorName   string      `json:"operator_name"`
	ConversationID string      `json:"conversation_id"`
	EventType      string      `json:"event_type"`
	LocalMessageID string      `json:"local_message_id"`
}

func parseContact(raw json.RawMessage) (models.Contact, error) {
	var wire wireContact
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.Contact{}, err
	}

	contact := models.Contact{
		Phone:          wire.Phone,
		Name:           wire.Name,
		ID:             wire.ID,
		WaID:           wire.WaID,
		Photo:          wire.Photo,
		Created:        wire.Created,
		LastUpdated:    wire.LastUpdated,
		ContactStatus:  wire.ContactStatus,
		Source:         wire.Source,
		ChannelID:      wire.ChannelID,
		OptedIn:        wire.OptedIn,
		AllowBroadcast: wire.AllowBroadcast,
		AllowSMS:       wire.AllowSMS,
		Teams:          wire.Teams,
		Segments:       wire.Segments,
		ChannelType:    wire.ChannelType,
		DisplayName:    wire.DisplayName,
	}
	if len(wire.CustomParams) > 0 {
		params := make(map[string]string, len(wire.CustomParams))
		for _, p := range wire.CustomParams {
			if p.Name != "" {
				params[p.Name] = p.Value
			}
		}
		contact.CustomParams = params
	}

	return contact, nil
}

// parseContacts extracts the contact list from a page envelope. The API
// is inconsistent about the envelope key, so both known spellings are
// probed. Entries that do not decode are skipped, not fatal.
func parseContacts(raw json.RawMessage) []models.Contact {
	var env struct {
		ContactList []json.RawMessage `json:"contact_list"`
		Contacts    []json.RawMessage `json:"contacts"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		log.WithError(err).Warn("failed to parse contact list")
		return nil
	}

	items := env.ContactList
	if items == nil {
		items = env.Contacts
	}

	contacts := make([]models.Contact, 0, len(items))
	for _, item := range items {
		contact, err := parseContact(item)
		if err != nil {
			log.WithError(err).Warn("skipping unparseable contact")
			continue
		}
		contacts = append(contacts, contact)
	}

	return contacts
}

func parseMessage(raw json.RawMessage) (models.Message, error) {
	var wire wireMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.Message{}, err
	}

	ts := wire.Created
	if ts == nil || ts == "" {
		ts = wire.Timestamp
	}

	return models.Message{
		ID:             wire.ID,
		Text:           wire.Text,
		Timestamp:      parseTimestamp(ts),
		Owner:          wire.Owner,
		Type:           wire.Type,
		Status:         wire.Status,
		AssignedID:     wire.AssignedID,
		OperatorName:   wire.OperatorName,
		ConversationID: wire.ConversationID,
		EventType:      wire.EventType,
		LocalMessageID: wire.LocalMessageID,
	}, nil
}

func parseMessages(raw json.RawMessage) []models.Message {
	var env struct {
		MessageList []json.RawMessage `json:"message_list"`
		Messages    []json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		log.WithError(err).Warn("failed to parse message list")
		return nil
	}

	items := env.MessageList
	if items == nil {
		items = env.Messages
	}

	messages := make([]models.Message, 0, len(items))
	for _, item := range items {
		message, err := parseMessage(item)
		if err != nil {
			log.WithError(err).Warn("skipping unparseable message")
			continue
		}
		messages = append(messages, message)
	}

	return messages
}

// messageTimeFormats are tried in order for string timestamps: ISO-8601
// with a zone, without one, and the vendor's space-separated form.
var messageTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTimestamp converts whatever the API put in a timestamp field.
// Unparseable and missing values fall back to the current time so a
// message always carries a usable timestamp.
func parseTimestamp(value interface{}) time.Time {
	switch v := value.(type) {
	case string:
		for _, format := range messageTimeFormats {
			if ts, err := time.Parse(format, v); err == nil {
				return ts
			}
		}
		log.WithField("value", v).Debug("unparseable message timestamp, defaulting to now")
	case float64:
		return time.Unix(int64(v), 0)
	}
	return time.Now()
}

func parseTemplates(raw json.RawMessage) []models.Template {
	var env struct {
		MessageTemplates []models.Template `json:"message_templates"`
		Templates        []models.Template `json:"templates"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		log.WithError(err).Warn("failed to parse template list")
		return nil
	}
	if env.MessageTemplates != nil {
		return env.MessageTemplates
	}
	return env.Templates
}

func parseCampaigns(raw json.RawMessage) []models.Campaign {
	var env struct {
		Broadcasts []models.Campaign `json:"broadcasts"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		log.WithError(err).Warn("failed to parse broadcast list")
		return nil
	}
	return env.Broadcasts
}

func parseChannels(raw json.RawMessage) []models.Channel {
	var env struct {
		Channels []models.Channel `json:"channels"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		log.WithError(err).Warn("failed to parse channel list")
		return nil
	}
	return env.Channels
}

// parseSendResponse normalizes a send-style response into a success flag
// and a human-readable message. The probe order matters: an explicit
// error wins, then a created message object, then the generic success and
// result acknowledgements.
func parseSendResponse(raw json.RawMessage) (bool, string) {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return false, "Invalid response"
	}

	if errValue, ok := payload["error"]; ok && truthy(errValue) {
		return false, stringify(errValue)
	}

	if message, ok := payload["message"].(map[string]interface{}); ok {
		id, _ := message["id"].(string)
		return true, fmt.Sprintf("Message sent (id: %s)", id)
	}

	if success, ok := payload["success"].(bool); ok && success {
		if broadcastID, ok := payload["broadcast_id"].(string); ok {
			return true, broadcastID
		}
		return true, "Success"
	}

	if result, ok := payload["result"].(bool); ok && result {
		return true, "Success"
	}

	if message, ok := payload["message"].(string); ok {
		return false, message
	}
	if errValue, ok := payload["error"]; ok {
		return false, stringify(errValue)
	}
	return false, "Unknown response"
}

// errorField reports whether the payload carries an "error" key at all,
// regardless of its value. Lookup endpoints answer with one instead of a
// 404 when the record does not exist.
func errorField(raw json.RawMessage) (string, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", false
	}
	errRaw, ok := fields["error"]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(errRaw, &s); err == nil {
		return s, true
	}
	return string(errRaw), true
}

// resultField extracts the boolean "result" acknowledgement some
// endpoints answer with.
func resultField(raw json.RawMessage) bool {
	var payload struct {
		Result bool `json:"result"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return false
	}
	return payload.Result
}

// truthy mirrors the loose error-field check on send responses: empty
// strings, false, zero and null all count as no error.
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	}
	return true
}

// stringify renders an error value of any JSON type as text.
func stringify(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}
