package assets

import (
	"context"
	"fmt"
	"strings"
)

// Resolver dispatches a logo reference to the loader for its scheme:
// data URLs, http(s) URLs, and everything else to the filesystem loader.
type Resolver struct {
	files   LogoLoader // nil if no logo directory is configured
	remote  LogoLoader // nil if remote logos are disabled
	dataURL LogoLoader
}

// NewResolver creates a Resolver. If logoDir is empty, file references are
// rejected with ErrUnsupportedRef. If allowRemote is false, http(s)
// references are rejected the same way.
// Returns error if logoDir is set but invalid.
func NewResolver(logoDir string, allowRemote bool) (*Resolver, error) {
	r := &Resolver{dataURL: DataURLLoader{}}

	if logoDir != "" {
		fsLoader, err := NewFilesystemLoader(logoDir)
		if err != nil {
			return nil, err
		}
		r.files = fsLoader
	}
	if allowRemote {
		r.remote = NewHTTPLoader(nil)
	}
	return r, nil
}

// LoadLogo loads ref with the loader matching its scheme.
func (r *Resolver) LoadLogo(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	loader := r.loaderFor(ref)
	if loader == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRef, truncateRef(ref))
	}
	return loader.LoadLogo(ctx, ref)
}

func (r *Resolver) loaderFor(ref string) LogoLoader {
	switch {
	case ref == "":
		return nil
	case strings.HasPrefix(ref, "data:"):
		return r.dataURL
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return r.remote
	default:
		return r.files
	}
}

// truncateRef keeps error messages short when ref is a large data URL.
func truncateRef(ref string) string {
	const limit = 64
	if len(ref) <= limit {
		return ref
	}
	return ref[:limit] + "..."
}

// Compile-time interface check.
var _ LogoLoader = (*Resolver)(nil)
