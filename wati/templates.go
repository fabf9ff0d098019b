package wati

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mbenaiss/wati-mcp/models"
)

// ListTemplates lists message templates one page at a time.
func (c *Client) ListTemplates(ctx context.Context, pageSize, pageNumber int) ([]models.Template, error) {
	raw, err := c.request(ctx, http.MethodGet, apiPrefix+"/messageTemplates", pageQuery(pageSize, pageNumber), nil)
	if err != nil {
		return nil, err
	}

	return parseTemplates(raw), nil
}

// GetTemplate fetches one message template by ID. A payload carrying an
// error field means the template does not exist.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*models.Template, error) {
	raw, err := c.request(ctx, http.MethodGet, apiPrefix+"/messageTemplates/"+url.PathEscape(templateID), nil, nil)
	if err != nil {
		return nil, err
	}
	if _, found := errorField(raw); found {
		return nil, fmt.Errorf("template %s not found", templateID)
	}

	var template models.Template
	if err := json.Unmarshal(raw, &template); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &template, nil
}

// SendTemplate sends a template to the given recipients, creating a
// broadcast. On success the returned message carries the broadcast ID.
func (c *Client) SendTemplate(ctx context.Context, templateName, broadcastName string, recipients []models.TemplateRecipient, channel string) (bool, string) {
	body := map[string]interface{}{
		"template_name":  templateName,
		"broadcast_name": broadcastName,
		"recipients":     recipients,
	}
	if channel != "" {
		body["channel"] = channel
	}

	raw, err := c.request(ctx, http.MethodPost, apiPrefix+"/messageTemplates/send", nil, body)
	if err != nil {
		return false, err.Error()
	}

	var payload struct {
		Success     bool   `json:"success"`
		BroadcastID string `json:"broadcast_id"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return false, "Invalid response"
	}
	if payload.Success {
		return true, fmt.Sprintf("Broadcast %s", payload.BroadcastID)
	}
	if payload.Error != "" {
		return false, payload.Error
	}
	return false, "Unknown error"
}
