package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbeETag(t *testing.T) {
	t.Run("reads linked etag without following redirect", func(t *testing.T) {
		cdnHit := false
		cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cdnHit = true
			w.Header().Set(LinkedETagHeader, `"cdn-object"`)
		}))
		defer cdn.Close()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodHead {
				t.Errorf("method = %s, want HEAD", r.Method)
			}
			if ua := r.Header.Get("User-Agent"); ua != "llama-cpp" {
				t.Errorf("User-Agent = %q", ua)
			}
			w.Header().Set(LinkedETagHeader, `"abc123"`)
			w.Header().Set("Location", cdn.URL+"/blob")
			w.WriteHeader(http.StatusFound)
		}))
		defer server.Close()

		c := newTestClient(t, server, nil)
		etag, err := c.ProbeETag(context.Background(), server.URL+"/o/m/resolve/main/m.gguf")
		if err != nil {
			t.Fatalf("ProbeETag() error = %v", err)
		}
		if etag != `"abc123"` {
			t.Errorf("etag = %q, want %q", etag, `"abc123"`)
		}
		if cdnHit {
			t.Error("probe followed the redirect")
		}
	})

	t.Run("missing header yields empty etag", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("ETag", `"plain"`)
		}))
		defer server.Close()

		c := newTestClient(t, server, nil)
		etag, err := c.ProbeETag(context.Background(), server.URL+"/f")
		if err != nil {
			t.Fatalf("ProbeETag() error = %v", err)
		}
		if etag != "" {
			t.Errorf("etag = %q, want empty", etag)
		}
	})

	t.Run("network error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		c := newTestClient(t, server, nil)
		if _, err := c.ProbeETag(context.Background(), server.URL+"/f"); !errors.Is(err, ErrDownload) {
			t.Errorf("ProbeETag() error = %v, want ErrDownload", err)
		}
	})
}

func TestClientURLs(t *testing.T) {
	c, err := New(Config{Endpoint: "https://hf.example.com"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	r := mustRef(t, "unsloth/M:BF16")

	if got, want := c.ManifestURL(r), "https://hf.example.com/v2/unsloth/M/manifests/BF16"; got != want {
		t.Errorf("ManifestURL() = %q, want %q", got, want)
	}
	if got, want := c.TreeURL(r, "BF16"), "https://hf.example.com/api/models/unsloth/M/tree/main/BF16"; got != want {
		t.Errorf("TreeURL() = %q, want %q", got, want)
	}
	if got, want := c.ResolveURL(r, "BF16/x-00001-of-00002.gguf"), "https://hf.example.com/unsloth/M/resolve/main/BF16/x-00001-of-00002.gguf"; got != want {
		t.Errorf("ResolveURL() = %q, want %q", got, want)
	}
}
