package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/paca-cli/paca/internal/ref"
)

// Local implements Store on a directory of the local filesystem.
//
// Layout:
//
//	dir/
//	  {owner}_{model}_{flat artifact}         content
//	  {owner}_{model}_{flat artifact}.etag    validator (raw header value)
//	  manifest={owner}={model}={tag}.json     manifest body as received
type Local struct {
	dir string
}

// NewLocal returns a store rooted at dir. The directory must already exist,
// see ResolveDir.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (s *Local) Dir() string { return s.dir }

func (s *Local) ContentPath(filename string) string {
	return filepath.Join(s.dir, filename)
}

func (s *Local) Size(filename string) (int64, bool) {
	info, err := os.Stat(s.ContentPath(filename))
	if err != nil || !info.Mode().IsRegular() {
		return 0, false
	}
	return info.Size(), true
}

// ValidatorCurrent is true only when the sidecar exists and its bytes equal
// remote. An empty remote never matches, and read errors count as stale.
func (s *Local) ValidatorCurrent(filename, remote string) bool {
	if remote == "" {
		return false
	}
	stored, err := os.ReadFile(s.validatorPath(filename))
	if err != nil {
		return false
	}
	return bytes.Equal(stored, []byte(remote))
}

func (s *Local) SaveValidator(filename, etag string) error {
	path := s.validatorPath(filename)
	if err := os.WriteFile(path, []byte(etag), 0644); err != nil {
		return fmt.Errorf("write validator %s: %w", path, err)
	}
	return nil
}

func (s *Local) SaveManifest(r ref.ModelRef, raw []byte) error {
	path := filepath.Join(s.dir, ManifestFilename(r))
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// HasManifest reports whether a manifest sidecar exists for r.
func (s *Local) HasManifest(r ref.ModelRef) bool {
	_, err := os.Stat(filepath.Join(s.dir, ManifestFilename(r)))
	return err == nil
}

// ListManifests returns the model references with a manifest sidecar,
// sorted by their string form.
func (s *Local) ListManifests() ([]ref.ModelRef, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read cache dir %s: %w", s.dir, err)
	}

	var refs []ref.ModelRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if r, ok := parseManifestFilename(e.Name()); ok {
			refs = append(refs, r)
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].String() < refs[j].String()
	})
	return refs, nil
}

func (s *Local) validatorPath(filename string) string {
	return s.ContentPath(filename) + validatorSuffix
}
