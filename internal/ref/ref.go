// Package ref parses model references of the form "owner/model:tag".
package ref

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidReference = errors.New("paca: invalid model reference")
	ErrMissingTag       = fmt.Errorf("%w: missing tag (expected format: owner/model:tag)", ErrInvalidReference)
	ErrMissingOwner     = fmt.Errorf("%w: missing owner (expected format: owner/model:tag)", ErrInvalidReference)
)

// ModelRef identifies a tagged model in a registry.
type ModelRef struct {
	Owner string
	Model string
	Tag   string
}

// Parse splits s on the first ":" into repo and tag, then the repo on the
// first "/" into owner and model.
func Parse(s string) (ModelRef, error) {
	repo, tag, ok := strings.Cut(s, ":")
	if !ok {
		return ModelRef{}, ErrMissingTag
	}
	owner, model, ok := strings.Cut(repo, "/")
	if !ok {
		return ModelRef{}, ErrMissingOwner
	}
	if owner == "" || model == "" || tag == "" {
		return ModelRef{}, fmt.Errorf("%w: %q has an empty owner, model or tag", ErrInvalidReference, s)
	}
	return ModelRef{Owner: owner, Model: model, Tag: tag}, nil
}

// Repo returns "owner/model".
func (r ModelRef) Repo() string { return r.Owner + "/" + r.Model }

func (r ModelRef) String() string { return r.Repo() + ":" + r.Tag }
