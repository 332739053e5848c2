package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrPresetNotFound indicates the requested preset does not exist.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrLogoNotFound indicates the referenced logo does not exist.
	ErrLogoNotFound = errors.New("logo not found")

	// ErrLogoTooLarge indicates the logo exceeds the loader's size limit.
	ErrLogoTooLarge = errors.New("logo too large")

	// ErrLogoFetch indicates a remote logo could not be retrieved.
	ErrLogoFetch = errors.New("logo fetch failed")

	// ErrInvalidDataURL indicates a malformed or non-image data URL.
	ErrInvalidDataURL = errors.New("invalid data URL")

	// ErrUnsupportedRef indicates no loader handles the reference.
	ErrUnsupportedRef = errors.New("unsupported logo reference")
)
