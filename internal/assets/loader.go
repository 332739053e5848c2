package assets

import "context"

// LogoLoader defines the contract for fetching header logo bytes.
// Implementations may read from disk, HTTP, data URLs, object storage, etc.
type LogoLoader interface {
	// LoadLogo returns the raw image bytes for ref.
	// Returns ErrLogoNotFound if nothing exists at ref.
	LoadLogo(ctx context.Context, ref string) ([]byte, error)
}

// MaxLogoSize caps logo bytes accepted by every loader (2MB).
const MaxLogoSize = 2 << 20
