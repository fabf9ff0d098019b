package wati

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mbenaiss/wati-mcp/config"
)

// apiPrefix is the versioned root every WATI v3 endpoint lives under.
const apiPrefix = "api/ext/v3"

// Client is a WATI v3 API client. Each operation performs one HTTP call;
// the client owns no state besides the configuration it was built from.
type Client struct {
	baseURL     string
	tenantID    string
	token       string
	downloadDir string
	httpClient  *http.Client
}

// NewClient creates a new client from the given configuration.
func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		tenantID:    cfg.TenantID,
		token:       cfg.AuthToken,
		downloadDir: cfg.DownloadDir,
		httpClient:  &http.Client{},
	}
}

// BuildTarget prefixes a plain identifier with the configured channel so
// multi-channel accounts address the right number. Inputs that already
// carry a separator pass through unchanged, so the operation is
// idempotent. Without a configured channel this is the identity.
func (c *Client) BuildTarget(idOrPhone string) string {
	if c.tenantID != "" && !strings.Contains(idOrPhone, ":") {
		return c.tenantID + ":" + idOrPhone
	}
	return idOrPhone
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// request performs one JSON API call. Network failures, non-2xx statuses
// and non-JSON bodies all come back as errors, so callers never have to
// inspect the HTTP layer themselves.
func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, body interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	reqURL := c.endpointURL(endpoint, query)
	log.WithFields(log.Fields{
		"method": method,
		"url":    reqURL,
	}).Debug("wati API request")

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// multipartRequest uploads a file with optional form fields. Only the
// bearer header is set by hand; the multipart writer supplies its own
// content type.
func (c *Client) multipartRequest(ctx context.Context, endpoint, filePath string, fields map[string]string, query url.Values) (json.RawMessage, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(filePath)))
	partHeader.Set("Content-Type", contentTypeFor(filePath))
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	reqURL := c.endpointURL(endpoint, query)
	log.WithField("url", reqURL).Debug("wati API multipart request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithFields(log.Fields{
			"method": req.Method,
			"url":    req.URL.String(),
		}).WithError(err).Error("wati API: HTTP request failed")
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.WithFields(log.Fields{
			"method":      req.Method,
			"url":         req.URL.String(),
			"status_code": resp.StatusCode,
		}).Error("wati API: non-2xx response")
		return nil, fmt.Errorf("wati API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	trimmed := bytes.TrimSpace(bodyBytes)
	if len(trimmed) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("invalid JSON response: %s", string(trimmed))
	}

	return json.RawMessage(trimmed), nil
}

// fetchToTemp downloads a remote file into a temporary location and
// returns its path. The request carries no credentials: the URL is not a
// WATI endpoint. The caller owns the returned file.
func (c *Client) fetchToTemp(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", fileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status code %d", fileURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "wati-upload-*"+urlExt(fileURL))
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}

	return tmp.Name(), nil
}

// contentTypeFor guesses a file's MIME type from its extension.
func contentTypeFor(filePath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filePath)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// urlExt extracts the file extension from a URL, ignoring the query string.
func urlExt(fileURL string) string {
	trimmed := fileURL
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if ext := path.Ext(trimmed); ext != "" {
		return ext
	}
	return ".tmp"
}

// isRemoteURL reports whether the path is a http(s) URL rather than a
// local file.
func isRemoteURL(filePath string) bool {
	return strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://")
}
