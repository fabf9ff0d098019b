package wati

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/mbenaiss/wati-mcp/models"
)

// GetMessages lists a conversation's messages one page at a time.
func (c *Client) GetMessages(ctx context.Context, target string, pageSize, pageNumber int) ([]models.Message, error) {
	target = c.BuildTarget(target)

	raw, err := c.request(ctx, http.MethodGet, apiPrefix+"/conversations/"+url.PathEscape(target)+"/messages", pageQuery(pageSize, pageNumber), nil)
	if err != nil {
		return nil, err
	}

	return parseMessages(raw), nil
}

// SendMessage sends a plain text message. The returned message is
// human-readable and mirrors what the API said about the attempt.
func (c *Client) SendMessage(ctx context.Context, target, text string) (bool, string) {
	body := map[string]interface{}{
		"target": c.BuildTarget(target),
		"text":   text,
	}

	raw, err := c.request(ctx, http.MethodPost, apiPrefix+"/conversations/messages/text", nil, body)
	if err != nil {
		return false, err.Error()
	}

	return parseSendResponse(raw)
}

// SendFile uploads a file as an attachment. A http(s) path is first
// fetched into a temporary file, which is removed on every exit path once
// the upload attempt finishes.
func (c *Client) SendFile(ctx context.Context, target, filePath, caption string) (bool, string) {
	actualPath := filePath
	if isRemoteURL(filePath) {
		tempPath, err := c.fetchToTemp(ctx, filePath)
		if err != nil {
			return false, fmt.Sprintf("Error sending file: %v", err)
		}
		defer os.Remove(tempPath)
		actualPath = tempPath
	}

	fields := map[string]string{"target": c.BuildTarget(target)}
	if caption != "" {
		fields["caption"] = caption
	}

	raw, err := c.multipartRequest(ctx, apiPrefix+"/conversations/messages/file", actualPath, fields, nil)
	if err != nil {
		return false, fmt.Sprintf("Error sending file: %v", err)
	}

	return parseSendResponse(raw)
}

// SendFileViaURL asks the API to fetch and send a file by its public URL,
// without the file ever passing through this process.
func (c *Client) SendFileViaURL(ctx context.Context, target, fileURL, caption string) (bool, string) {
	body := map[string]interface{}{
		"target":   c.BuildTarget(target),
		"file_url": fileURL,
	}
	if caption != "" {
		body["caption"] = caption
	}

	raw, err := c.request(ctx, http.MethodPost, apiPrefix+"/conversations/messages/fileViaUrl", nil, body)
	if err != nil {
		return false, err.Error()
	}

	return parseSendResponse(raw)
}

// DownloadMedia fetches a message's media into the download directory and
// returns the local path. The filename comes from the Content-Disposition
// header when the server provides one, else the message ID is used.
func (c *Client) DownloadMedia(ctx context.Context, messageID string) (string, error) {
	reqURL := c.endpointURL(apiPrefix+"/conversations/messages/file/"+url.PathEscape(messageID), nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithField("message_id", messageID).WithError(err).Error("wati API: media download failed")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"message_id":  messageID,
			"status_code": resp.StatusCode,
		}).Error("wati API: media download returned non-200 status")
		return "", fmt.Errorf("download failed: status code %d", resp.StatusCode)
	}

	if err := os.MkdirAll(c.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	localPath := filepath.Join(c.downloadDir, mediaFilename(resp.Header.Get("Content-Disposition"), messageID))
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(localPath)
		return "", fmt.Errorf("failed to write media: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return localPath, nil
}

// mediaFilename derives a safe local filename from a Content-Disposition
// header, falling back to the message ID. filepath.Base strips any path
// components a hostile header might carry.
func mediaFilename(contentDisposition, messageID string) string {
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			if name := params["filename"]; name != "" {
				return filepath.Base(name)
			}
		}
	}
	return messageID
}

// SendInteractiveButtons sends a reply-buttons interactive message.
func (c *Client) SendInteractiveButtons(ctx context.Context, target string, message models.ButtonMessage) (bool, string) {
	body := map[string]interface{}{
		"target":         c.BuildTarget(target),
		"type":           "buttons",
		"button_message": message,
	}

	raw, err := c.request(ctx, http.MethodPost, apiPrefix+"/conversations/messages/interactive", nil, body)
	if err != nil {
		return false, err.Error()
	}

	return parseSendResponse(raw)
}

// SendInteractiveList sends a list-picker interactive message.
func (c *Client) SendInteractiveList(ctx context.Context, target string, message models.ListMessage) (bool, string) {
	body := map[string]interface{}{
		"target":       c.BuildTarget(target),
		"type":         "list",
		"list_message": message,
	}

	raw, err := c.request(ctx, http.MethodPost, apiPrefix+"/conversations/messages/interactive", nil, body)
	if err != nil {
		return false, err.Error()
	}

	return parseSendResponse(raw)
}

// AssignOperator routes a conversation to a human operator, or back to
// the automated agent when the assignee is the bot. The API expects a
// null assignee email for the bot case.
func (c *Client) AssignOperator(ctx context.Context, target string, assignee models.Assignee) (bool, error) {
	var email *string
	if !assignee.IsBot() {
		e := assignee.Email()
		email = &e
	}

	target = c.BuildTarget(target)
	raw, err := c.request(ctx, http.MethodPut, apiPrefix+"/conversations/"+url.PathEscape(target)+"/operator", nil, map[string]interface{}{"assignee_email": email})
	if err != nil {
		return false, err
	}

	return resultField(raw), nil
}

// UpdateConversationStatus moves a conversation to a new status. Invalid
// statuses are rejected before any request goes out.
func (c *Client) UpdateConversationStatus(ctx context.Context, target string, status models.ConversationStatus) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("invalid conversation status %q: must be open, solved, pending or block", status)
	}

	target = c.BuildTarget(target)
	raw, err := c.request(ctx, http.MethodPut, apiPrefix+"/conversations/"+url.PathEscape(target)+"/status", nil, map[string]interface{}{"new_status": status})
	if err != nil {
		return false, err
	}

	return resultField(raw), nil
}
