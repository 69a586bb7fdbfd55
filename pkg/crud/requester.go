package crud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Requester is the single request helper every generated action goes
// through. It owns the base URL and attaches the bearer token and CSRF
// header to each call; generated code never builds raw requests.
type Requester struct {
	BaseURL    string
	CSRFToken  string
	HTTPClient *http.Client
}

// NewRequester creates a Requester against baseURL. csrfToken may be empty
// when the backend does not enforce CSRF.
func NewRequester(baseURL, csrfToken string) *Requester {
	return &Requester{
		BaseURL:    baseURL,
		CSRFToken:  csrfToken,
		HTTPClient: http.DefaultClient,
	}
}

// Do performs one JSON request. body and out may be nil. Non-2xx responses
// are returned as *APIError carrying the envelope message when the body has
// one; 2xx bodies that fail to decode map to ErrMalformedResponse.
func (r *Requester) Do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if r.CSRFToken != "" {
		req.Header.Set("X-CSRF-Token", r.CSRFToken)
	}

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env struct {
			Message string `json:"message"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
