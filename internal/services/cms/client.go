package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"assetsync/internal/assetindex"
	"assetsync/internal/services"
	"assetsync/internal/transfer"
)

const defaultHTTPTimeout = 30 * time.Second

// Config captures the runtime settings required to talk to the API.
type Config struct {
	URL            string
	Token          string
	TimeoutSeconds int
}

// Client wraps the content API.
type Client struct {
	cfg        Config
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

// NewClient constructs an API client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			URL:            strings.TrimSpace(cfg.URL),
			Token:          strings.TrimSpace(cfg.Token),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// ListAssets returns one page of remote assets.
func (c *Client) ListAssets(ctx context.Context, first, skip int) ([]assetindex.Asset, error) {
	var data struct {
		Assets []assetindex.Asset `json:"assets"`
	}
	vars := map[string]any{"first": first, "skip": skip}
	if err := c.do(ctx, "list assets", listAssetsQuery, vars, &data); err != nil {
		return nil, err
	}
	return data.Assets, nil
}

// UpdateAssetMetadata writes altText and position for id and returns the
// remote file name.
func (c *Client) UpdateAssetMetadata(ctx context.Context, id, altText, position string) (string, error) {
	var data struct {
		UpdateAsset *struct {
			FileName string `json:"fileName"`
		} `json:"updateAsset"`
	}
	if err := c.do(ctx, "update asset", updateAssetMutation, metadataVars(id, altText, position), &data); err != nil {
		return "", err
	}
	if data.UpdateAsset == nil {
		return "", services.Wrap(services.ErrRemoteCall, "update asset", id, "response missing updateAsset", nil)
	}
	return data.UpdateAsset.FileName, nil
}

type uploadPayload struct {
	Status string `json:"status"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestPostData *struct {
		URL           string `json:"url"`
		Date          string `json:"date"`
		Key           string `json:"key"`
		Signature     string `json:"signature"`
		Algorithm     string `json:"algorithm"`
		Policy        string `json:"policy"`
		Credential    string `json:"credential"`
		SecurityToken string `json:"securityToken"`
	} `json:"requestPostData"`
}

// UpdateAssetWithReupload writes metadata for id, flags the asset for a new
// binary, and returns the signed storage policy for the upload.
func (c *Client) UpdateAssetWithReupload(ctx context.Context, id, altText, position string) (transfer.Policy, error) {
	var data struct {
		UpdateAsset *struct {
			FileName string         `json:"fileName"`
			Upload   *uploadPayload `json:"upload"`
		} `json:"updateAsset"`
	}
	if err := c.do(ctx, "reupload asset", updateAssetWithReuploadMutation, metadataVars(id, altText, position), &data); err != nil {
		return transfer.Policy{}, err
	}
	if data.UpdateAsset == nil || data.UpdateAsset.Upload == nil {
		return transfer.Policy{}, services.Wrap(services.ErrRemoteCall, "reupload asset", id, "response missing upload", nil)
	}
	upload := data.UpdateAsset.Upload
	if upload.Error != nil {
		return transfer.Policy{}, services.Wrap(services.ErrRemoteCall, "reupload asset", id,
			fmt.Sprintf("upload rejected: %s: %s", upload.Error.Code, upload.Error.Message), nil)
	}
	post := upload.RequestPostData
	if post == nil || strings.TrimSpace(post.URL) == "" {
		return transfer.Policy{}, services.Wrap(services.ErrRemoteCall, "reupload asset", id, "response missing requestPostData", nil)
	}
	return transfer.Policy{
		URL:           post.URL,
		Date:          post.Date,
		Key:           post.Key,
		Signature:     post.Signature,
		Algorithm:     post.Algorithm,
		Policy:        post.Policy,
		Credential:    post.Credential,
		SecurityToken: post.SecurityToken,
	}, nil
}

// PublishAsset promotes id to the published stage and returns its file name.
func (c *Client) PublishAsset(ctx context.Context, id string) (string, error) {
	var data struct {
		PublishAsset *struct {
			FileName string `json:"fileName"`
		} `json:"publishAsset"`
	}
	if err := c.do(ctx, "publish asset", publishAssetMutation, map[string]any{"id": id}, &data); err != nil {
		return "", err
	}
	if data.PublishAsset == nil {
		return "", services.Wrap(services.ErrRemoteCall, "publish asset", id, "response missing publishAsset", nil)
	}
	return data.PublishAsset.FileName, nil
}

func metadataVars(id, altText, position string) map[string]any {
	return map[string]any{"id": id, "altText": altText, "position": position}
}

func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	if c.cfg.URL == "" {
		return services.Wrap(services.ErrConfiguration, op, "", "api url required", nil)
	}
	encoded, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return services.Wrap(services.ErrRemoteCall, op, "", "encode body", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(encoded))
	if err != nil {
		return services.Wrap(services.ErrRemoteCall, op, "", "new request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrRemoteCall, op, "", "http error", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrRemoteCall, op, "", "read body", err)
	}

	var envelope graphQLResponse
	decodeErr := json.Unmarshal(body, &envelope)
	if resp.StatusCode >= http.StatusMultipleChoices {
		msg := fmt.Sprintf("http %d: %s", resp.StatusCode, summarize(body))
		if decodeErr == nil && len(envelope.Errors) > 0 {
			msg = fmt.Sprintf("http %d: %s", resp.StatusCode, joinErrors(envelope.Errors))
		}
		return services.Wrap(services.ErrRemoteCall, op, "", msg, nil)
	}
	if decodeErr != nil {
		return services.Wrap(services.ErrRemoteCall, op, "", "decode response", decodeErr)
	}
	if len(envelope.Errors) > 0 {
		return services.Wrap(services.ErrRemoteCall, op, "", joinErrors(envelope.Errors), nil)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return services.Wrap(services.ErrRemoteCall, op, "", "response has no data", nil)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return services.Wrap(services.ErrRemoteCall, op, "", "decode data", err)
	}
	return nil
}

func joinErrors(list []graphQLError) string {
	msgs := make([]string, 0, len(list))
	for _, e := range list {
		if m := strings.TrimSpace(e.Message); m != "" {
			msgs = append(msgs, m)
		}
	}
	if len(msgs) == 0 {
		return "graphql error"
	}
	return strings.Join(msgs, "; ")
}

func summarize(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}

