package store

import (
	"encoding/json"
	"fmt"

	"github.com/alnah/go-invoice2pdf/internal/model"
)

// row is one pdf_templates record. The nested template parts are JSON
// columns holding the same camelCase documents the YAML files use.
type row struct {
	AdvocateID  string            `json:"advocate_id,omitempty"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ColorScheme model.ColorScheme `json:"color_scheme"`
	Header      model.Header      `json:"header"`
	Footer      model.Footer      `json:"footer"`
	Sections    model.Sections    `json:"sections"`
	TableStyle  model.TableStyle  `json:"table_style"`
	PageMargins model.Margins     `json:"page_margins"`
	IsDefault   bool              `json:"is_default"`
}

func rowFrom(accountID string, t model.Template) row {
	return row{
		AdvocateID:  accountID,
		Name:        t.Name,
		Description: t.Description,
		ColorScheme: t.ColorScheme,
		Header:      t.Header,
		Footer:      t.Footer,
		Sections:    t.Sections,
		TableStyle:  t.Table,
		PageMargins: t.PageMargins,
		IsDefault:   true,
	}
}

func (r row) template() model.Template {
	return model.Template{
		Name:        r.Name,
		Description: r.Description,
		ColorScheme: r.ColorScheme,
		Header:      r.Header,
		Footer:      r.Footer,
		Sections:    r.Sections,
		Table:       r.TableStyle,
		PageMargins: r.PageMargins,
	}
}

// jsonColumns are the JSON-typed columns in insert order.
func (r row) jsonColumns() ([]string, error) {
	parts := []any{r.ColorScheme, r.Header, r.Footer, r.Sections, r.TableStyle, r.PageMargins}
	out := make([]string, len(parts))
	for i, p := range parts {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding column: %v", ErrStore, err)
		}
		out[i] = string(b)
	}
	return out, nil
}

// decodeColumns fills r's JSON parts from raw column values, in the order
// of jsonColumns. NULL columns leave the zero value.
func (r *row) decodeColumns(raw [6][]byte) error {
	dst := []any{&r.ColorScheme, &r.Header, &r.Footer, &r.Sections, &r.TableStyle, &r.PageMargins}
	for i, b := range raw {
		if len(b) == 0 {
			continue
		}
		if err := json.Unmarshal(b, dst[i]); err != nil {
			return fmt.Errorf("%w: decoding column: %v", ErrStore, err)
		}
	}
	return nil
}
