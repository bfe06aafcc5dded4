package imgbb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q, want test-key", r.URL.Query().Get("key"))
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("missing image form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "logo.png" {
			t.Errorf("filename = %q, want logo.png", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"url":"https://i.ibb.co/abc/logo.png","delete_url":"https://ibb.co/del"},"success":true,"status":200}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.endpoint = server.URL

	result, err := client.Upload(context.Background(), "logo.png", strings.NewReader("fake-png-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.URL != "https://i.ibb.co/abc/logo.png" {
		t.Errorf("url = %q", result.URL)
	}
	if result.DeleteURL != "https://ibb.co/del" {
		t.Errorf("delete url = %q", result.DeleteURL)
	}
}

func TestUploadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"status":400}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.endpoint = server.URL

	if _, err := client.Upload(context.Background(), "logo.png", strings.NewReader("bytes")); err == nil {
		t.Fatal("expected error on rejected upload")
	}
}

func TestUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.endpoint = server.URL

	if _, err := client.Upload(context.Background(), "logo.png", strings.NewReader("bytes")); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestUploadMissingAPIKey(t *testing.T) {
	client := NewClient("")
	_, err := client.Upload(context.Background(), "logo.png", strings.NewReader("bytes"))
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
