package remote

import (
	"fmt"

	"github.com/google/go-containerregistry/pkg/authn"
)

// CredentialFromEnv returns a bearer authenticator when HF_TOKEN is set,
// and authn.Anonymous otherwise.
func CredentialFromEnv(getenv func(string) string) authn.Authenticator {
	if getenv != nil {
		if token := getenv(TokenEnv); token != "" {
			return &authn.Bearer{Token: token}
		}
	}
	return authn.Anonymous
}

// authorizationHeader renders the Authorization header value for auth.
// Only registry tokens are supported; anything else yields no header.
func authorizationHeader(auth authn.Authenticator) (string, error) {
	if auth == nil {
		return "", nil
	}
	cfg, err := auth.Authorization()
	if err != nil {
		return "", fmt.Errorf("resolve credentials: %w", err)
	}
	if cfg == nil || cfg.RegistryToken == "" {
		return "", nil
	}
	return "Bearer " + cfg.RegistryToken, nil
}
