// Package gemini sends a conversation to a generate-content endpoint and turns
// the reply into a model turn.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/longkey1/chatbot/internal/chat"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"
)

// EndpointURL builds the generate content URL for a model.
func EndpointURL(baseURL, model, token string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(baseURL, "/"), model)
	if token != "" {
		url += "?key=" + token
	}
	return url
}

// Client posts conversations to a single configured endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     logrus.FieldLogger
	debug      bool
}

// NewClient creates a new client for the given endpoint URL
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logrus.StandardLogger(),
		debug:      false,
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// SetLogger sets the logger used for debug output
func (c *Client) SetLogger(logger logrus.FieldLogger) {
	c.logger = logger
}

// SetDebug enables or disables debug mode
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// Endpoint returns the configured endpoint URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch sends the turns as one request and returns the model's reply.
// Exactly one HTTP request is made; there are no retries.
func (c *Client) Fetch(ctx context.Context, turns []chat.Turn) (chat.Turn, error) {
	jsonData, err := json.Marshal(EncodeContents(turns))
	if err != nil {
		return chat.Turn{}, fmt.Errorf("%w: error marshaling request: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return chat.Turn{}, fmt.Errorf("%w: error creating request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("%w: error sending request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("%w: error reading response: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		if c.debug {
			return chat.Turn{}, fmt.Errorf("%w: %s", statusErr, string(body))
		}
		return chat.Turn{}, statusErr
	}

	if c.debug {
		c.logger.WithField("body", string(body)).Debug("raw API response")
	}

	text, err := ExtractText(body)
	if err != nil {
		if c.debug {
			return chat.Turn{}, fmt.Errorf("%w\nRaw response: %s", err, string(body))
		}
		return chat.Turn{}, err
	}

	return chat.ModelTurn(StripBold(text)), nil
}

// ExtractText parses a response body and returns
// candidates[0].content.parts[0].text.
func ExtractText(body []byte) (string, error) {
	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: error parsing response: %v", ErrFormat, err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrFormat)
	}
	content := result.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("%w: first candidate has no content", ErrFormat)
	}
	if len(content.Parts) == 0 {
		return "", fmt.Errorf("%w: first candidate has no parts", ErrFormat)
	}
	if content.Parts[0].Text == nil {
		return "", fmt.Errorf("%w: first part has no text", ErrFormat)
	}

	return *content.Parts[0].Text, nil
}
