package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func payload(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

// rangeServer serves data and honours "bytes=N-" ranges with 206.
func rangeServer(t *testing.T, data []byte, ranges *[]string) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng := r.Header.Get("Range")
		mu.Lock()
		if ranges != nil {
			*ranges = append(*ranges, rng)
		}
		mu.Unlock()

		if rng == "" {
			w.Header().Set("Content-Length", strconv.Itoa(len(data)))
			w.Write(data)
			return
		}
		offset, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(rng, "bytes="), "-"))
		if err != nil || offset > len(data) {
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
			return
		}
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, len(data)-1, len(data)))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)-offset))
		w.WriteHeader(http.StatusPartialContent)
		w.Write(data[offset:])
	}))
}

func TestDownloadFileFull(t *testing.T) {
	data := payload(100_000)
	var ranges []string
	server := rangeServer(t, data, &ranges)
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "model.gguf")
	c := newTestClient(t, server, nil)

	var events []Progress
	err := c.DownloadFile(context.Background(), server.URL+"/f", dest, 0, func(p Progress) {
		events = append(events, p)
	})
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("content mismatch: got %d bytes, want %d", len(got), len(data))
	}
	if len(ranges) != 1 || ranges[0] != "" {
		t.Errorf("ranges = %q, want one plain GET", ranges)
	}
	if len(events) < 2 {
		t.Fatalf("expected several progress events, got %d", len(events))
	}
	last := events[len(events)-1]
	if last.Completed != int64(len(data)) || last.Total != int64(len(data)) {
		t.Errorf("last progress = %+v, want completed=total=%d", last, len(data))
	}
	if last.File != "model.gguf" {
		t.Errorf("progress file = %q", last.File)
	}
}

func TestDownloadFileResume(t *testing.T) {
	data := payload(1024)
	var ranges []string
	server := rangeServer(t, data, &ranges)
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "model.gguf")
	if err := os.WriteFile(dest, data[:512], 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	c := newTestClient(t, server, nil)
	var first Progress
	seen := false
	err := c.DownloadFile(context.Background(), server.URL+"/f", dest, 512, func(p Progress) {
		if !seen {
			first, seen = p, true
		}
	})
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}

	if len(ranges) != 1 || ranges[0] != "bytes=512-" {
		t.Errorf("ranges = %q, want [bytes=512-]", ranges)
	}
	got, _ := os.ReadFile(dest)
	if !bytes.Equal(got, data) {
		t.Errorf("resumed content mismatch: got %d bytes", len(got))
	}
	if first.Completed != 512 || first.Total != 1024 {
		t.Errorf("first progress = %+v, want completed=512 total=1024", first)
	}
}

func TestDownloadFileRangeIgnored(t *testing.T) {
	data := payload(1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "model.gguf")
	if err := os.WriteFile(dest, []byte("stale partial bytes"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	c := newTestClient(t, server, nil)
	if err := c.DownloadFile(context.Background(), server.URL+"/f", dest, 19, nil); err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	got, _ := os.ReadFile(dest)
	if !bytes.Equal(got, data) {
		t.Errorf("expected full rewrite, got %d bytes", len(got))
	}
}

func TestDownloadFileErrors(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "model.gguf")
		c := newTestClient(t, server, nil)
		err := c.DownloadFile(context.Background(), server.URL+"/f", dest, 0, nil)
		if !errors.Is(err, ErrDownload) {
			t.Errorf("error = %v, want ErrDownload", err)
		}
		if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
			t.Error("destination should not be created for a failed request")
		}
	})

	t.Run("unwritable destination", func(t *testing.T) {
		server := rangeServer(t, payload(10), nil)
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "missing", "model.gguf")
		c := newTestClient(t, server, nil)
		err := c.DownloadFile(context.Background(), server.URL+"/f", dest, 0, nil)
		if !errors.Is(err, ErrFileWrite) {
			t.Errorf("error = %v, want ErrFileWrite", err)
		}
	})

	t.Run("truncated body keeps partial file", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "4096")
			w.Write(payload(1000))
			// Returning early with a short body makes the client see an unexpected EOF.
		}))
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "model.gguf")
		c := newTestClient(t, server, nil)
		err := c.DownloadFile(context.Background(), server.URL+"/f", dest, 0, nil)
		if !errors.Is(err, ErrFileWrite) {
			t.Fatalf("error = %v, want ErrFileWrite", err)
		}
		info, statErr := os.Stat(dest)
		if statErr != nil {
			t.Fatalf("partial file should remain: %v", statErr)
		}
		if info.Size() != 1000 {
			t.Errorf("partial size = %d, want 1000", info.Size())
		}
	})
}
