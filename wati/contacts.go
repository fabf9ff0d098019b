package wati

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mbenaiss/wati-mcp/models"
)

const (
	defaultPageSize = 20
	searchPageSize  = 100
)

// pageQuery normalizes pagination arguments into query parameters.
// Non-positive values take the defaults.
func pageQuery(pageSize, pageNumber int) url.Values {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageNumber <= 0 {
		pageNumber = 1
	}
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(pageSize))
	query.Set("page_number", strconv.Itoa(pageNumber))
	return query
}

// GetContacts lists contacts one page at a time, optionally restricted
// to a single channel.
func (c *Client) GetContacts(ctx context.Context, pageSize, pageNumber int, channel string) ([]models.Contact, error) {
	query := pageQuery(pageSize, pageNumber)
	if channel != "" {
		query.Set("channel", channel)
	}

	raw, err := c.request(ctx, http.MethodGet, apiPrefix+"/contacts", query, nil)
	if err != nil {
		return nil, err
	}

	return parseContacts(raw), nil
}

// SearchContacts fetches one large page and filters it client-side with a
// case-insensitive substring match on name, phone and platform ID. The
// v3 API has no dedicated search parameter on the contact listing.
func (c *Client) SearchContacts(ctx context.Context, query string) ([]models.Contact, error) {
	contacts, err := c.GetContacts(ctx, searchPageSize, 1, "")
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := make([]models.Contact, 0, len(contacts))
	for _, contact := range contacts {
		if strings.Contains(strings.ToLower(contact.Name), q) ||
			strings.Contains(strings.ToLower(contact.Phone), q) ||
			strings.Contains(strings.ToLower(contact.WaID), q) {
			matched = append(matched, contact)
		}
	}

	return matched, nil
}

// GetContact fetches a single contact by phone number or contact ID. A
// payload carrying an error field means the contact does not exist, which
// comes back as an error so callers can report an absent result.
func (c *Client) GetContact(ctx context.Context, target string) (*models.Contact, error) {
	target = c.BuildTarget(target)

	raw, err := c.request(ctx, http.MethodGet, apiPrefix+"/contacts/"+url.PathEscape(target), nil, nil)
	if err != nil {
		return nil, err
	}
	if _, found := errorField(raw); found {
		return nil, fmt.Errorf("contact %s not found", target)
	}

	contact, err := parseContact(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contact: %w", err)
	}

	return &contact, nil
}

// AddContact creates a new contact with optional custom parameters.
func (c *Client) AddContact(ctx context.Context, whatsappNumber, name string, customParams []models.CustomParam) (*models.Contact, error) {
	body := map[string]interface{}{
		"whatsapp_number": whatsappNumber,
		"name":            name,
	}
	if len(customParams) > 0 {
		body["custom_params"] = customParams
	}

	raw, err := c.request(ctx, http.MethodPost, apiPrefix+"/contacts", nil, body)
	if err != nil {
		return nil, err
	}
	if errText, found := errorField(raw); found {
		return nil, fmt.Errorf("failed to add contact %s: %s", whatsappNumber, errText)
	}

	contact, err := parseContact(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contact: %w", err)
	}

	return &contact, nil
}

// UpdateContacts bulk-updates custom parameters on existing contacts and
// returns the contacts the API echoed back. Partial failures are whatever
// the API reports; no reconciliation happens here.
func (c *Client) UpdateContacts(ctx context.Context, updates []models.ContactUpdate) ([]models.Contact, error) {
	prepared := make([]models.ContactUpdate, len(updates))
	for i, update := range updates {
		update.Target = c.BuildTarget(update.Target)
		prepared[i] = update
	}

	raw, err := c.request(ctx, http.MethodPut, apiPrefix+"/contacts", nil, map[string]interface{}{"contacts": prepared})
	if err != nil {
		return nil, err
	}

	return parseContacts(raw), nil
}

// ContactCount returns the total number of contacts on the account.
func (c *Client) ContactCount(ctx context.Context) (int, error) {
	raw, err := c.request(ctx, http.MethodGet, apiPrefix+"/contacts/count", nil, nil)
	if err != nil {
		return 0, err
	}

	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, fmt.Errorf("failed to parse contact count: %w", err)
	}

	return payload.Count, nil
}

// AssignContactTeams adds the contact to the given teams.
func (c *Client) AssignContactTeams(ctx context.Context, target string, teams []string) (bool, error) {
	body := map[string]interface{}{
		"target": c.BuildTarget(target),
		"teams":  teams,
	}

	raw, err := c.request(ctx, http.MethodPut, apiPrefix+"/contacts/teams", nil, body)
	if err != nil {
		return false, err
	}

	return resultField(raw), nil
}
