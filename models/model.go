package models

import "time"

// Contact represents a WATI contact. Phone is the only field the API
// guarantees; everything else is zero-valued when the response omits it.
type Contact struct {
	Phone          string            `json:"phone"`
	Name           string            `json:"name,omitempty"`
	ID             string            `json:"id,omitempty"`
	WaID           string            `json:"wa_id,omitempty"`
	Photo          string            `json:"photo,omitempty"`
	Created        string            `json:"created,omitempty"`
	LastUpdated    string            `json:"last_updated,omitempty"`
	ContactStatus  string            `json:"contact_status,omitempty"`
	Source         string            `json:"source,omitempty"`
	ChannelID      string            `json:"channel_id,omitempty"`
	OptedIn        *bool             `json:"opted_in,omitempty"`
	AllowBroadcast *bool             `json:"allow_broadcast,omitempty"`
	AllowSMS       *bool             `json:"allow_sms,omitempty"`
	Teams          []string          `json:"teams,omitempty"`
	Segments       []string          `json:"segments,omitempty"`
	CustomParams   map[string]string `json:"custom_params,omitempty"`
	ChannelType    string            `json:"channel_type,omitempty"`
	DisplayName    string            `json:"display_name,omitempty"`
}

// Message represents one conversation entry. Owner is true when the
// message was sent by the account rather than the contact.
type Message struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
	Owner          bool      `json:"owner"`
	Type           string    `json:"type,omitempty"`
	Status         string    `json:"status,omitempty"`
	AssignedID     string    `json:"assigned_id,omitempty"`
	OperatorName   string    `json:"operator_name,omitempty"`
	ConversationID string    `json:"conversation_id,omitempty"`
	EventType      string    `json:"event_type,omitempty"`
	LocalMessageID string    `json:"local_message_id,omitempty"`
}

// CustomParam is a user-defined key/value attribute attached to a contact
// or to a template recipient.
type CustomParam struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ContactUpdate addresses one contact in a bulk update.
type ContactUpdate struct {
	Target       string        `json:"target"`
	CustomParams []CustomParam `json:"customParams"`
}

// Template represents a pre-approved message template
type Template struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
	Language string `json:"language,omitempty"`
	Body     string `json:"body,omitempty"`
	Header   string `json:"header,omitempty"`
	Footer   string `json:"footer,omitempty"`
}

// TemplateRecipient is one destination of a template broadcast.
type TemplateRecipient struct {
	PhoneNumber  string        `json:"phone_number"`
	CustomParams []CustomParam `json:"custom_params,omitempty"`
}

// Campaign represents a template broadcast and its delivery counters.
type Campaign struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TemplateName   string `json:"template_name,omitempty"`
	Channel        string `json:"channel,omitempty"`
	Status         string `json:"status,omitempty"`
	Created        string `json:"created,omitempty"`
	RecipientCount int    `json:"recipient_count,omitempty"`
	SentCount      int    `json:"sent_count,omitempty"`
	DeliveredCount int    `json:"delivered_count,omitempty"`
	ReadCount      int    `json:"read_count,omitempty"`
	FailedCount    int    `json:"failed_count,omitempty"`
}

// Channel represents one WhatsApp number attached to the account.
type Channel struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"channel,omitempty"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
}

// ConversationStatus is the lifecycle state of a conversation.
type ConversationStatus string

const (
	StatusOpen    ConversationStatus = "open"
	StatusSolved  ConversationStatus = "solved"
	StatusPending ConversationStatus = "pending"
	StatusBlock   ConversationStatus = "block"
)

// Valid reports whether s is one of the statuses the API accepts.
func (s ConversationStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusSolved, StatusPending, StatusBlock:
		return true
	}
	return false
}

// Assignee selects who takes over a conversation: a named operator or the
// automated agent. The zero value assigns to the bot.
type Assignee struct {
	email string
}

// Agent assigns the conversation to the operator with the given email.
func Agent(email string) Assignee {
	return Assignee{email: email}
}

// Bot assigns the conversation to the automated agent.
func Bot() Assignee {
	return Assignee{}
}

// IsBot reports whether the assignee is the automated agent.
func (a Assignee) IsBot() bool {
	return a.email == ""
}

// Email returns the operator email, empty for the bot.
func (a Assignee) Email() string {
	return a.email
}

// InteractiveHeader is the header block of a buttons message.
type InteractiveHeader struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Button is one reply choice of a buttons message.
type Button struct {
	Text string `json:"text"`
}

// ButtonMessage is the "buttons" variant of an interactive message.
type ButtonMessage struct {
	Header  *InteractiveHeader `json:"header,omitempty"`
	Body    string             `json:"body"`
	Footer  string             `json:"footer,omitempty"`
	Buttons []Button           `json:"buttons"`
}

// ListRow is one selectable row inside a list section.
type ListRow struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ListSection groups rows of a list message under a title.
type ListSection struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

// ListMessage is the "list" variant of an interactive message.
type ListMessage struct {
	Header     string        `json:"header,omitempty"`
	Body       string        `json:"body"`
	Footer     string        `json:"footer,omitempty"`
	ButtonText string        `json:"button_text,omitempty"`
	Sections   []ListSection `json:"sections"`
}
