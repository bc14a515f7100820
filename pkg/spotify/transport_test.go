package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// apiFixture wires a fake Web API and a fake token endpoint together so the
// full acquire-attach-retry path can be exercised.
type apiFixture struct {
	api          *httptest.Server
	accounts     *httptest.Server
	client       *Client
	tokenFetches int
	apiCalls     int
}

func newAPIFixture(t *testing.T, handler func(f *apiFixture, w http.ResponseWriter, r *http.Request)) *apiFixture {
	t.Helper()

	f := &apiFixture{}

	f.accounts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.tokenFetches++
		fmt.Fprintf(w, `{"access_token":"T%d","token_type":"Bearer","expires_in":3600}`, f.tokenFetches)
	}))
	t.Cleanup(f.accounts.Close)

	f.api = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.apiCalls++
		handler(f, w, r)
	}))
	t.Cleanup(f.api.Close)

	f.client = NewClient(Config{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		BaseURL:      f.api.URL,
		AccountsURL:  f.accounts.URL,
	})

	return f
}

func TestClient_AttachesBearerAndAccept(t *testing.T) {
	f := newAPIFixture(t, func(f *apiFixture, w http.ResponseWriter, r *http.Request) {
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("Accept header = %q, want application/json", accept)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer T1" {
			t.Errorf("Authorization header = %q, want Bearer T1", auth)
		}
		fmt.Fprint(w, `{"id":"abc","name":"Nirvana"}`)
	})

	artist, err := f.client.Artists().Get(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if artist.Name != "Nirvana" {
		t.Errorf("artist name = %q, want Nirvana", artist.Name)
	}
	if f.tokenFetches != 1 {
		t.Errorf("token fetches = %d, want 1", f.tokenFetches)
	}
}

func TestClient_RefreshAndRetryOn401(t *testing.T) {
	// Scenario: the first API call is rejected with 401, the mediator must
	// refresh once and retry with the new token, and the caller sees only
	// the successful response.
	f := newAPIFixture(t, func(f *apiFixture, w http.ResponseWriter, r *http.Request) {
		if f.apiCalls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"status":401,"message":"The access token expired"}}`)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer T2" {
			t.Errorf("retry Authorization = %q, want Bearer T2", auth)
		}
		fmt.Fprint(w, `{"id":"abc","name":"Nirvana"}`)
	})

	artist, err := f.client.Artists().Get(context.Background(), "abc")
	if err != nil {
		t.Fatalf("expected silent retry to succeed, got %v", err)
	}
	if artist.Name != "Nirvana" {
		t.Errorf("artist name = %q, want Nirvana", artist.Name)
	}
	if f.apiCalls != 2 {
		t.Errorf("API calls = %d, want 2", f.apiCalls)
	}
	if f.tokenFetches != 2 {
		t.Errorf("token fetches = %d, want 2 (initial + refresh)", f.tokenFetches)
	}
}

func TestClient_SecondConsecutive401Surfaces(t *testing.T) {
	f := newAPIFixture(t, func(f *apiFixture, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"status":401,"message":"Invalid access token"}}`)
	})

	_, err := f.client.Artists().Get(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected an error after two 401s")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("error = %v, want unauthorized *Error", err)
	}

	// Exactly one retry: two API calls total, one refresh beyond the
	// initial fetch, no retry loop.
	if f.apiCalls != 2 {
		t.Errorf("API calls = %d, want 2", f.apiCalls)
	}
	if f.tokenFetches != 2 {
		t.Errorf("token fetches = %d, want 2", f.tokenFetches)
	}
}

func TestClient_RefreshFailureSurfacesOriginal401(t *testing.T) {
	var apiCalls int
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"status":401,"message":"The access token expired"}}`)
	}))
	defer api.Close()

	// The token endpoint succeeds once to seed the first request, then
	// rejects the refresh triggered by the 401.
	var tokenFetches int
	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenFetches++
		if tokenFetches > 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"access_token":"T1","token_type":"Bearer","expires_in":3600}`)
	}))
	defer accounts.Close()

	client := NewClient(Config{
		ClientID:     "id",
		ClientSecret: "secret",
		BaseURL:      api.URL,
		AccountsURL:  accounts.URL,
	})

	_, err := client.Artists().Get(context.Background(), "abc")

	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("error = %v, want the original unauthorized *Error", err)
	}
	if apiCalls != 1 {
		t.Errorf("API calls = %d, want 1 (no retry without a new token)", apiCalls)
	}
}

func TestClient_ProceedsWithoutTokenWhenAcquisitionFails(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("expected bare request, got Authorization %q", auth)
		}
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"status":401,"message":"No token provided"}}`)
	}))
	defer api.Close()

	// No credentials configured: acquisition fails fast, the request goes
	// out bare, and the upstream 401 is the error the caller sees. The 401
	// path still attempts a refresh, which also fails fast.
	client := NewClient(Config{BaseURL: api.URL, AccountsURL: "http://localhost:0"})

	_, err := client.Artists().Get(context.Background(), "abc")

	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("error = %v, want upstream unauthorized *Error", err)
	}
}

func TestClient_MapsAPIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "spotify error envelope",
			status:      http.StatusNotFound,
			body:        `{"error":{"status":404,"message":"Non existing id"}}`,
			wantMessage: "Non existing id",
		},
		{
			name:        "rate limited without envelope",
			status:      http.StatusTooManyRequests,
			body:        "slow down",
			wantMessage: "Too Many Requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t, func(f *apiFixture, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := f.client.Artists().Get(context.Background(), "abc")

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	f := newAPIFixture(t, func(f *apiFixture, w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{}`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := f.client.Artists().Get(ctx, "abc"); err == nil {
		t.Fatal("expected context deadline error")
	}
}
