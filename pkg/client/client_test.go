package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   map[string]string{"code": "invalid_credentials", "message": "invalid email or password"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]string{
				"token":      "test-token",
				"first_name": "Asha",
				"last_name":  "Verma",
			},
		})
	})
	mux.HandleFunc("/roadmap/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   map[string]string{"code": "unauthorized", "message": "invalid or expired token"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"progress": 1,
				"steps": []map[string]interface{}{
					{"index": 1, "kind": "lesson", "title": "HTML & CSS Basics", "locked": false,
						"quiz": map[string]interface{}{"questions": []map[string]interface{}{
							{"q": "HTML stands for?", "a": []string{"x", "y"}, "correct": 0},
						}}},
					{"index": 2, "kind": "assessment", "title": "Assessment: HTML & CSS Basics", "locked": false},
				},
			},
		})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestLoginStoresToken(t *testing.T) {
	ts := fakeAPI(t)
	c := NewClient(ts.URL)

	result, err := c.Login(context.Background(), "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token != "test-token" || result.FirstName != "Asha" {
		t.Errorf("unexpected login result: %+v", result)
	}
	if c.Token() != "test-token" {
		t.Errorf("expected the client to store the token, got %q", c.Token())
	}
}

func TestLoginAPIError(t *testing.T) {
	ts := fakeAPI(t)
	c := NewClient(ts.URL)

	_, err := c.Login(context.Background(), "asha@example.com", "wrong")
	if err == nil {
		t.Fatal("expected an error for bad credentials")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Code != "invalid_credentials" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestRoadmapDecoding(t *testing.T) {
	ts := fakeAPI(t)
	c := NewClient(ts.URL, WithToken("test-token"))

	roadmap, err := c.Roadmap(context.Background(), "Frontend Development")
	if err != nil {
		t.Fatalf("Roadmap failed: %v", err)
	}
	if roadmap.Progress != 1 {
		t.Errorf("expected progress 1, got %d", roadmap.Progress)
	}
	if len(roadmap.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(roadmap.Steps))
	}
	if roadmap.Steps[0].Kind != "lesson" || roadmap.Steps[1].Kind != "assessment" {
		t.Errorf("unexpected step kinds: %+v", roadmap.Steps)
	}
	if len(roadmap.Steps[0].Quiz.Questions) != 1 {
		t.Errorf("expected an embedded quiz, got %+v", roadmap.Steps[0].Quiz)
	}
}

func TestRoadmapRequiresToken(t *testing.T) {
	ts := fakeAPI(t)
	c := NewClient(ts.URL)

	_, err := c.Roadmap(context.Background(), "Frontend Development")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "unauthorized" {
		t.Fatalf("expected an unauthorized APIError, got %v", err)
	}
}
