package wati

import (
	"context"
	"net/http"

	"github.com/mbenaiss/wati-mcp/models"
)

// ListChannels lists the WhatsApp channels attached to the account.
func (c *Client) ListChannels(ctx context.Context, pageSize, pageNumber int) ([]models.Channel, error) {
	raw, err := c.request(ctx, http.MethodGet, apiPrefix+"/channels", pageQuery(pageSize, pageNumber), nil)
	if err != nil {
		return nil, err
	}

	return parseChannels(raw), nil
}
