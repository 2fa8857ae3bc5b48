package remote

import (
	"testing"

	"github.com/google/go-containerregistry/pkg/authn"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "default when unset",
			env:  nil,
			want: "https://huggingface.co",
		},
		{
			name: "HF_ENDPOINT",
			env:  map[string]string{"HF_ENDPOINT": "https://custom-hf.example.com"},
			want: "https://custom-hf.example.com",
		},
		{
			name: "MODEL_ENDPOINT",
			env:  map[string]string{"MODEL_ENDPOINT": "https://custom-model.example.com"},
			want: "https://custom-model.example.com",
		},
		{
			name: "MODEL_ENDPOINT wins over HF_ENDPOINT",
			env: map[string]string{
				"HF_ENDPOINT":    "https://hf.example.com",
				"MODEL_ENDPOINT": "https://model.example.com",
			},
			want: "https://model.example.com",
		},
		{
			name: "empty MODEL_ENDPOINT falls through",
			env: map[string]string{
				"HF_ENDPOINT":    "https://hf.example.com",
				"MODEL_ENDPOINT": "",
			},
			want: "https://hf.example.com",
		},
		{
			name: "trailing slash trimmed",
			env:  map[string]string{"HF_ENDPOINT": "https://mirror.example.com/"},
			want: "https://mirror.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveEndpoint(envMap(tt.env))
			if got != tt.want {
				t.Errorf("ResolveEndpoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveEndpointNilLookup(t *testing.T) {
	if got := ResolveEndpoint(nil); got != DefaultEndpoint {
		t.Errorf("ResolveEndpoint(nil) = %q, want %q", got, DefaultEndpoint)
	}
}

func TestCredentialFromEnv(t *testing.T) {
	t.Run("token set", func(t *testing.T) {
		auth := CredentialFromEnv(envMap(map[string]string{"HF_TOKEN": "test-token-123"}))
		header, err := authorizationHeader(auth)
		if err != nil {
			t.Fatalf("authorizationHeader() error = %v", err)
		}
		if header != "Bearer test-token-123" {
			t.Errorf("header = %q, want %q", header, "Bearer test-token-123")
		}
	})

	t.Run("token unset", func(t *testing.T) {
		auth := CredentialFromEnv(envMap(nil))
		if auth != authn.Anonymous {
			t.Errorf("CredentialFromEnv() = %v, want authn.Anonymous", auth)
		}
		header, err := authorizationHeader(auth)
		if err != nil {
			t.Fatalf("authorizationHeader() error = %v", err)
		}
		if header != "" {
			t.Errorf("header = %q, want empty", header)
		}
	})

	t.Run("nil authenticator", func(t *testing.T) {
		header, err := authorizationHeader(nil)
		if err != nil || header != "" {
			t.Errorf("authorizationHeader(nil) = %q, %v", header, err)
		}
	})
}
