package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// get performs an authenticated GET against the Web API and decodes the JSON
// response into out.
//
// Token acquisition happens before every call. If no token can be obtained,
// the request is sent without a credential and fails upstream with its own
// error; the acquisition failure is only logged, keeping a single error
// channel per request.
//
// On a 401 response the token is force-refreshed and the request is retried
// exactly once with the new token. A second 401 is returned to the caller
// unmodified, and a refresh failure surfaces as the original 401 error.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	token, err := c.auth.GetValidToken(ctx)
	if err != nil {
		c.logDebugf("spotify: proceeding without token: %v", err)
		token = ""
	}

	body, err := c.roundTrip(ctx, path, query, token)
	if err != nil {
		var apiErr *Error
		if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
			return err
		}

		c.logDebugf("spotify: got 401 for %s, refreshing token", path)
		newToken, refreshErr := c.auth.Refresh(ctx)
		if refreshErr != nil {
			c.logDebugf("spotify: token refresh after 401 failed: %v", refreshErr)
			return err
		}

		body, err = c.roundTrip(ctx, path, query, newToken)
		if err != nil {
			return err
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("spotify: failed to parse response for %s: %w", path, err)
	}
	return nil
}

// roundTrip performs a single HTTP round trip. Non-2xx responses are mapped
// to *Error; transport failures are wrapped and returned as-is.
func (c *Client) roundTrip(ctx context.Context, path string, query url.Values, token string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify: request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("spotify: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	return body, nil
}
