package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// File keeps one YAML template per account, at <root>/<accountID>.yaml.
type File struct {
	root string
	mu   sync.Mutex
}

// NewFile returns a File rooted at dir, creating the directory if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrStore)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &File{root: abs}, nil
}

// Root returns the absolute storage directory.
func (s *File) Root() string { return s.root }

func (s *File) path(accountID string) (string, error) {
	if err := CheckAccount(accountID); err != nil {
		return "", err
	}
	return filepath.Join(s.root, accountID+".yaml"), nil
}

// LoadDefaultTemplate reads the account's template file.
func (s *File) LoadDefaultTemplate(ctx context.Context, accountID string) (*model.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(accountID)
	if err != nil {
		return nil, err
	}

	var t model.Template
	if err := yamlutil.ReadFile(path, &t, true); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: account %s", ErrTemplateNotFound, accountID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &t, nil
}

// SaveTemplate validates t and atomically replaces the account's template
// file.
func (s *File) SaveTemplate(ctx context.Context, accountID string, t model.Template) (model.Template, error) {
	if err := ctx.Err(); err != nil {
		return model.Template{}, err
	}
	t, err := prepare(accountID, t)
	if err != nil {
		return model.Template{}, err
	}
	path, err := s.path(accountID)
	if err != nil {
		return model.Template{}, err
	}
	data, err := yamlutil.Marshal(t)
	if err != nil {
		return model.Template{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fileutil.WriteFileAtomic(path, data, 0o600); err != nil {
		return model.Template{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return t, nil
}
