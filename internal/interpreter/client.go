package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrInterpreter wraps every failure talking to the query interpreter.
var ErrInterpreter = errors.New("query interpreter")

// Client turns a natural-language hiring query into a criteria object. The
// payload is returned undecoded; scoring.ParseCriteria owns its semantics.
type Client interface {
	Interpret(ctx context.Context, query string) (json.RawMessage, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type interpretRequest struct {
	Query string `json:"query"`
}

func (c *HTTPClient) Interpret(ctx context.Context, query string) (json.RawMessage, error) {
	body, err := json.Marshal(interpretRequest{Query: query})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/interpret", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterpreter, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInterpreter, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrInterpreter, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %d %s", ErrInterpreter, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return unwrapCriteria(data)
}

// unwrapCriteria accepts either the criteria object itself or an envelope
// of the form {"criteria": {...}}.
func unwrapCriteria(data []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: response is not a JSON object: %v", ErrInterpreter, err)
	}
	if inner, ok := envelope["criteria"]; ok && len(bytes.TrimSpace(inner)) > 0 && bytes.TrimSpace(inner)[0] == '{' {
		return inner, nil
	}
	return json.RawMessage(data), nil
}
