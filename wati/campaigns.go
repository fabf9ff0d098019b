package wati

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mbenaiss/wati-mcp/models"
)

// ListCampaigns lists broadcast campaigns one page at a time, optionally
// restricted to a single channel.
func (c *Client) ListCampaigns(ctx context.Context, pageSize, pageNumber int, channel string) ([]models.Campaign, error) {
	query := pageQuery(pageSize, pageNumber)
	if channel != "" {
		query.Set("channel", channel)
	}

	raw, err := c.request(ctx, http.MethodGet, apiPrefix+"/broadcasts", query, nil)
	if err != nil {
		return nil, err
	}

	return parseCampaigns(raw), nil
}

// GetCampaign fetches one broadcast campaign by ID. A payload carrying an
// error field means the campaign does not exist.
func (c *Client) GetCampaign(ctx context.Context, broadcastID string) (*models.Campaign, error) {
	raw, err := c.request(ctx, http.MethodGet, apiPrefix+"/broadcasts/"+url.PathEscape(broadcastID), nil, nil)
	if err != nil {
		return nil, err
	}
	if _, found := errorField(raw); found {
		return nil, fmt.Errorf("campaign %s not found", broadcastID)
	}

	var campaign models.Campaign
	if err := json.Unmarshal(raw, &campaign); err != nil {
		return nil, fmt.Errorf("failed to parse campaign: %w", err)
	}

	return &campaign, nil
}
