package store

import (
	"fmt"
	"os"
	"strings"

	v1 "github.com/google/go-containerregistry/pkg/v1"
)

// VerifyMode selects the post-transfer integrity check.
type VerifyMode string

const (
	VerifyNone   VerifyMode = "none"
	VerifySize   VerifyMode = "size"
	VerifySHA256 VerifyMode = "sha256"
)

// ParseVerifyMode accepts "", "none", "size" and "sha256".
func ParseVerifyMode(s string) (VerifyMode, error) {
	switch m := VerifyMode(strings.ToLower(s)); m {
	case "":
		return VerifyNone, nil
	case VerifyNone, VerifySize, VerifySHA256:
		return m, nil
	default:
		return "", fmt.Errorf("unknown verify mode %q (want none, size or sha256)", s)
	}
}

// DigestFromETag extracts a sha256 digest from an entity tag. Registries
// serving large files through LFS use the hex content hash as the tag,
// optionally quoted or marked weak.
func DigestFromETag(etag string) (v1.Hash, bool) {
	s := strings.TrimPrefix(etag, "W/")
	s = strings.Trim(s, `"`)
	if len(s) != 64 {
		return v1.Hash{}, false
	}
	h, err := v1.NewHash("sha256:" + strings.ToLower(s))
	if err != nil {
		return v1.Hash{}, false
	}
	return h, true
}

// Verify checks the file at path against the declared size and, in sha256
// mode, against the digest carried by etag when there is one.
func Verify(path string, size uint64, etag string, mode VerifyMode) error {
	if mode == VerifyNone || mode == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIntegrity, path, err)
	}
	if uint64(info.Size()) != size {
		return fmt.Errorf("%w: %s: size %d, expected %d", ErrIntegrity, path, info.Size(), size)
	}
	if mode != VerifySHA256 {
		return nil
	}

	want, ok := DigestFromETag(etag)
	if !ok {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIntegrity, path, err)
	}
	defer f.Close()

	got, _, err := v1.SHA256(f)
	if err != nil {
		return fmt.Errorf("%w: hash %s: %w", ErrIntegrity, path, err)
	}
	if got != want {
		return fmt.Errorf("%w: %s: digest %s, expected %s", ErrIntegrity, path, got, want)
	}
	return nil
}
