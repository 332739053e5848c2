// Package store persists per-account invoice templates.
//
// Three backends share one contract: a YAML directory (File), a Postgres
// table (Postgres) and the same table behind Supabase's REST interface
// (Supabase). LoadDefaultTemplate returns ErrTemplateNotFound when the
// account has no default; SaveTemplate validates before writing and makes
// the saved template the account's only default.
package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/model"
)

// DefaultTemplateName names templates saved without a name.
const DefaultTemplateName = "Default"

// Table is the relational table shared by Postgres and Supabase.
const Table = "pdf_templates"

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAccount   = errors.New("invalid account id")
	ErrStore            = errors.New("template store failed")
)

var accountPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)

// CheckAccount rejects account IDs that are empty, too long, or contain
// anything other than letters, digits, '-' and '_'.
func CheckAccount(id string) error {
	if !accountPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidAccount, id)
	}
	return nil
}

// prepare validates t for storage and fills in the name.
func prepare(accountID string, t model.Template) (model.Template, error) {
	if err := CheckAccount(accountID); err != nil {
		return model.Template{}, err
	}
	if err := t.Validate(); err != nil {
		return model.Template{}, err
	}
	if err := t.CheckColors(); err != nil {
		return model.Template{}, err
	}
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		t.Name = DefaultTemplateName
	}
	return t, nil
}
