package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"assetsync/internal/fileutil"
	"assetsync/internal/services"
)

const defaultHTTPTimeout = 5 * time.Minute

// ErrExists reports a download target that is already present on disk.
var ErrExists = errors.New("destination already exists")

// Policy is a signed storage POST policy.
type Policy struct {
	URL           string
	Date          string
	Key           string
	Signature     string
	Algorithm     string
	Policy        string
	Credential    string
	SecurityToken string
}

// Fields returns the form fields in the order storage expects them ahead of
// the file part.
func (p Policy) Fields() [][2]string {
	return [][2]string{
		{"X-Amz-Date", p.Date},
		{"key", p.Key},
		{"X-Amz-Signature", p.Signature},
		{"X-Amz-Algorithm", p.Algorithm},
		{"policy", p.Policy},
		{"X-Amz-Credential", p.Credential},
		{"X-Amz-Security-Token", p.SecurityToken},
	}
}

// Client performs downloads and policy uploads.
type Client struct {
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a transfer client.
func NewClient(opts ...Option) *Client {
	c := &Client{httpClient: &http.Client{Timeout: defaultHTTPTimeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download streams url into dest using exclusive create. An existing dest
// yields ErrExists and is left untouched.
func (c *Client) Download(ctx context.Context, url, dest string) (int64, error) {
	if strings.TrimSpace(url) == "" {
		return 0, services.Wrap(services.ErrTransfer, "download", dest, "asset has no url", nil)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, services.Wrap(services.ErrTransfer, "download", url, "build request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, services.Wrap(services.ErrTransfer, "download", url, "request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, services.Wrap(services.ErrTransfer, "download", url,
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))), nil)
	}

	written, err := fileutil.WriteExclusive(dest, resp.Body, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("%w: %s", ErrExists, dest)
		}
		return written, services.Wrap(services.ErrTransfer, "download", dest, "write file", err)
	}
	return written, nil
}

// Upload posts the file at path to the policy URL as a multipart form. The
// file part is named fileName. It returns the storage response body, which
// is empty on success for most buckets.
func (c *Client) Upload(ctx context.Context, policy Policy, path, fileName string) (string, error) {
	if strings.TrimSpace(policy.URL) == "" {
		return "", services.Wrap(services.ErrTransfer, "upload", fileName, "policy has no url", nil)
	}
	file, err := os.Open(path)
	if err != nil {
		return "", services.Wrap(services.ErrTransfer, "upload", path, "open file", err)
	}
	defer file.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for _, field := range policy.Fields() {
		if err := form.WriteField(field[0], field[1]); err != nil {
			return "", services.Wrap(services.ErrTransfer, "upload", fileName, "encode form", err)
		}
	}
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return "", services.Wrap(services.ErrTransfer, "upload", fileName, "encode form", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", services.Wrap(services.ErrTransfer, "upload", path, "read file", err)
	}
	if err := form.Close(); err != nil {
		return "", services.Wrap(services.ErrTransfer, "upload", fileName, "encode form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, policy.URL, &body)
	if err != nil {
		return "", services.Wrap(services.ErrTransfer, "upload", policy.URL, "build request", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransfer, "upload", policy.URL, "request failed", err)
	}
	defer resp.Body.Close()
	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransfer, "upload", policy.URL, "read response", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return string(text), services.Wrap(services.ErrTransfer, "upload", fileName,
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(text))), nil)
	}
	return string(text), nil
}
