package assets

import (
	"errors"
	"slices"
	"testing"

	"github.com/alnah/go-invoice2pdf/internal/model"
)

// ---------------------------------------------------------------------------
// TestPreset - Embedded layout presets
// ---------------------------------------------------------------------------

func TestPresetNames(t *testing.T) {
	t.Parallel()

	want := []string{"classic", "compact", "elegant", "executive", "formal", "minimalist", "modern", "spacious"}
	if got := PresetNames(); !slices.Equal(got, want) {
		t.Errorf("PresetNames() = %v, want %v", got, want)
	}
	if !slices.Contains(PresetNames(), DefaultPresetName) {
		t.Errorf("DefaultPresetName %q is not embedded", DefaultPresetName)
	}
}

func TestPreset_AllValid(t *testing.T) {
	t.Parallel()

	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := Preset(name)
			if err != nil {
				t.Fatalf("Preset(%q) error = %v", name, err)
			}
			if p.Name == "" {
				t.Error("preset has no display name")
			}
			if p.ColorScheme.Primary == "" {
				t.Errorf("color scheme %q not expanded", p.ColorScheme.Name)
			}
			if err := p.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if err := p.CheckColors(); err != nil {
				t.Errorf("CheckColors() error = %v", err)
			}
			resolved := model.Resolve(&p)
			if err := resolved.Validate(); err != nil {
				t.Errorf("resolved Validate() error = %v", err)
			}
		})
	}
}

func TestPreset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
		check   func(t *testing.T, p model.Template)
	}{
		{
			name:  "case and space insensitive",
			input: "  Executive ",
			check: func(t *testing.T, p model.Template) {
				if p.Header.TitleOrientation != model.Vertical {
					t.Errorf("TitleOrientation = %q, want vertical", p.Header.TitleOrientation)
				}
				if p.ColorScheme.Primary != "#C9A227" {
					t.Errorf("Primary = %q, want gold", p.ColorScheme.Primary)
				}
			},
		},
		{
			name:  "partial preset keeps unset fields empty",
			input: "classic",
			check: func(t *testing.T, p model.Template) {
				if p.PageMargins.Top != nil {
					t.Error("classic should inherit default margins")
				}
			},
		},
		{
			name:  "compact margins",
			input: "compact",
			check: func(t *testing.T, p model.Template) {
				if model.Value(p.PageMargins.Left) != 25 {
					t.Errorf("left margin = %v, want 25", model.Value(p.PageMargins.Left))
				}
			},
		},
		{name: "unknown", input: "baroque", wantErr: ErrPresetNotFound},
		{name: "traversal", input: "../formal", wantErr: ErrInvalidAssetName},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Preset(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Preset(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Preset(%q) error = %v", tt.input, err)
			}
			tt.check(t, p)
		})
	}
}
