package remote

import "strings"

// Configuration variables consulted on every resolution.
const (
	ModelEndpointEnv = "MODEL_ENDPOINT"
	HFEndpointEnv    = "HF_ENDPOINT"
	TokenEnv         = "HF_TOKEN"

	DefaultEndpoint = "https://huggingface.co"
)

// ResolveEndpoint picks the registry base URL: MODEL_ENDPOINT, then
// HF_ENDPOINT, then DefaultEndpoint. The result has no trailing slash.
func ResolveEndpoint(getenv func(string) string) string {
	endpoint := DefaultEndpoint
	if getenv != nil {
		if v := getenv(ModelEndpointEnv); v != "" {
			endpoint = v
		} else if v := getenv(HFEndpointEnv); v != "" {
			endpoint = v
		}
	}
	return strings.TrimRight(endpoint, "/")
}
