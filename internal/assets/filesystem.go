package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads logos from a directory on the filesystem.
// Implements LogoLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path so containment checks compare real paths.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadLogo reads ref, a path relative to the base directory. A file://
// prefix is accepted. Absolute paths are allowed only inside the base.
func (f *FilesystemLoader) LoadLogo(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ref = strings.TrimPrefix(ref, "file://")
	if ref == "" {
		return nil, fmt.Errorf("%w: empty path", ErrLogoNotFound)
	}

	filePath := ref
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(f.basePath, ref)
	}
	if err := f.verifyPathContainment(filePath); err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrLogoNotFound, ref)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", ErrLogoNotFound, ref)
	}
	if info.Size() > MaxLogoSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrLogoTooLarge, info.Size(), MaxLogoSize)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return data, nil
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Resolves symlinks to prevent escape via symlink pointing outside basePath.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file keeps its unresolved path; the read fails later anyway.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	// Separator suffix prevents prefix attacks (/base/path vs /base/pathevil).
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ LogoLoader = (*FilesystemLoader)(nil)
