package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
)

// ---------------------------------------------------------------------------
// TestDefaultTemplate - Canonical defaults are fully populated
// ---------------------------------------------------------------------------

func TestDefaultTemplate(t *testing.T) {
	t.Parallel()

	def := DefaultTemplate()

	if def.Header.Title != DefaultTitle {
		t.Errorf("Header.Title = %q, want %q", def.Header.Title, DefaultTitle)
	}
	if def.Header.TitleStyle.FontSize != 28 || !def.Header.TitleStyle.Bold() {
		t.Errorf("Header.TitleStyle = %+v, want 28pt bold", def.Header.TitleStyle)
	}
	if def.ColorScheme.Primary != "#2962FF" {
		t.Errorf("ColorScheme.Primary = %q, want #2962FF", def.ColorScheme.Primary)
	}
	if def.PageMargins.Top == nil || def.PageMargins.Left == nil || def.PageMargins.Right == nil || def.PageMargins.Bottom == nil {
		t.Fatal("PageMargins has nil sides")
	}
	if def.Table.ShowBorders == nil || def.Table.AlternateRows == nil {
		t.Error("table toggles must be set")
	}
	if err := def.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := def.CheckColors(); err != nil {
		t.Errorf("CheckColors() = %v, want nil", err)
	}
}

func TestDefaultTemplate_ReturnsFreshValue(t *testing.T) {
	t.Parallel()

	a := DefaultTemplate()
	*a.PageMargins.Top = 999
	a.Header.Title = "changed"

	b := DefaultTemplate()
	if *b.PageMargins.Top != DefaultMargin {
		t.Errorf("margin leaked between calls: %v", *b.PageMargins.Top)
	}
	if b.Header.Title != DefaultTitle {
		t.Errorf("title leaked between calls: %q", b.Header.Title)
	}
}

// ---------------------------------------------------------------------------
// TestResolve - Per-field merge with defaults
// ---------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("nil resolves to default", func(t *testing.T) {
		t.Parallel()

		got := Resolve(nil)
		if got.Header.Title != DefaultTitle {
			t.Errorf("Header.Title = %q, want %q", got.Header.Title, DefaultTitle)
		}
	})

	t.Run("single color keeps every other default", func(t *testing.T) {
		t.Parallel()

		got := Resolve(&Template{ColorScheme: ColorScheme{Primary: "#112233"}})
		def := DefaultTemplate()

		if got.ColorScheme.Primary != "#112233" {
			t.Errorf("Primary = %q, want #112233", got.ColorScheme.Primary)
		}
		if got.ColorScheme.Secondary != def.ColorScheme.Secondary {
			t.Errorf("Secondary = %q, want default %q", got.ColorScheme.Secondary, def.ColorScheme.Secondary)
		}
		if got.Header.TitleStyle != def.Header.TitleStyle {
			t.Errorf("TitleStyle = %+v, want default", got.Header.TitleStyle)
		}
		if *got.PageMargins.Left != DefaultMargin {
			t.Errorf("margin = %v, want default", *got.PageMargins.Left)
		}
	})

	t.Run("merge is per leaf inside nested styles", func(t *testing.T) {
		t.Parallel()

		got := Resolve(&Template{Header: Header{TitleStyle: TextStyle{FontSize: 40}}})
		if got.Header.TitleStyle.FontSize != 40 {
			t.Errorf("FontSize = %v, want 40", got.Header.TitleStyle.FontSize)
		}
		if got.Header.TitleStyle.Color != "#2962FF" {
			t.Errorf("Color = %q, want inherited #2962FF", got.Header.TitleStyle.Color)
		}
		if got.Header.TitleStyle.FontFamily != FontHelvetica {
			t.Errorf("FontFamily = %q, want inherited helvetica", got.Header.TitleStyle.FontFamily)
		}
	})

	t.Run("explicit false toggles survive", func(t *testing.T) {
		t.Parallel()

		got := Resolve(&Template{
			Header: Header{ShowBorder: Bool(false)},
			Table:  TableStyle{ShowBorders: Bool(false)},
		})
		if On(got.Header.ShowBorder) {
			t.Error("Header.ShowBorder = true, want false")
		}
		if On(got.Table.ShowBorders) {
			t.Error("Table.ShowBorders = true, want false")
		}
		if !On(got.Table.AlternateRows) {
			t.Error("Table.AlternateRows should inherit true")
		}
	})

	t.Run("zero margin is kept", func(t *testing.T) {
		t.Parallel()

		got := Resolve(&Template{PageMargins: Margins{Top: Float(0)}})
		if *got.PageMargins.Top != 0 {
			t.Errorf("Top = %v, want 0", *got.PageMargins.Top)
		}
		if *got.PageMargins.Bottom != DefaultMargin {
			t.Errorf("Bottom = %v, want default", *got.PageMargins.Bottom)
		}
	})

	t.Run("does not alias caller pointers", func(t *testing.T) {
		t.Parallel()

		in := &Template{PageMargins: Margins{Top: Float(12)}}
		got := Resolve(in)
		*got.PageMargins.Top = 99
		if *in.PageMargins.Top != 12 {
			t.Errorf("caller margin mutated to %v", *in.PageMargins.Top)
		}
	})

	t.Run("empty subtitle and zero paddings are kept", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			data string
		}{
			{name: "json", data: `{"header":{"subtitle":""},"sections":{"details":{"padding":0}},"table":{"cellPadding":0}}`},
			{name: "yaml", data: "header:\n  subtitle: \"\"\nsections:\n  details:\n    padding: 0\ntable:\n  cellPadding: 0\n"},
		}
		for _, tt := range tests {
			var in Template
			var err error
			if tt.name == "json" {
				err = json.Unmarshal([]byte(tt.data), &in)
			} else {
				err = yaml.Unmarshal([]byte(tt.data), &in)
			}
			if err != nil {
				t.Fatalf("%s: decode error = %v", tt.name, err)
			}

			got := Resolve(&in)
			if got.Header.Subtitle == nil || *got.Header.Subtitle != "" {
				t.Errorf("%s: Subtitle = %q, want empty", tt.name, Text(got.Header.Subtitle))
			}
			if got.Sections.Details.Padding == nil || got.Sections.Details.Pad() != 0 {
				t.Errorf("%s: details padding = %v, want 0", tt.name, got.Sections.Details.Padding)
			}
			if got.Table.CellPadding == nil || got.Table.Pad() != 0 {
				t.Errorf("%s: cell padding = %v, want 0", tt.name, got.Table.CellPadding)
			}
			if got.Sections.Items.Pad() != 5 {
				t.Errorf("%s: items padding = %v, want inherited 5", tt.name, got.Sections.Items.Pad())
			}
		}
	})

	t.Run("absent subtitle inherits the default", func(t *testing.T) {
		t.Parallel()

		got := Resolve(&Template{})
		if Text(got.Header.Subtitle) != "Professional Legal Services" {
			t.Errorf("Subtitle = %q, want default", Text(got.Header.Subtitle))
		}
	})

	t.Run("header text color feeds header style", func(t *testing.T) {
		t.Parallel()

		got := Resolve(&Template{Table: TableStyle{HeaderTextColor: "#000000"}})
		if got.Table.HeaderStyle.Color != "#000000" {
			t.Errorf("HeaderStyle.Color = %q, want #000000", got.Table.HeaderStyle.Color)
		}
	})
}

// ---------------------------------------------------------------------------
// TestValidate - Structural template checks
// ---------------------------------------------------------------------------

func TestTemplate_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tmpl    *Template
		wantErr error
	}{
		{name: "nil template", tmpl: nil},
		{name: "empty template", tmpl: &Template{}},
		{
			name:    "negative margin",
			tmpl:    &Template{PageMargins: Margins{Left: Float(-1)}},
			wantErr: ErrInvalidTemplate,
		},
		{
			name:    "unknown font family",
			tmpl:    &Template{Header: Header{TitleStyle: TextStyle{FontFamily: "comic"}}},
			wantErr: ErrInvalidTemplate,
		},
		{
			name:    "unknown weight",
			tmpl:    &Template{Sections: Sections{Notes: Section{ContentStyle: TextStyle{FontWeight: "heavy"}}}},
			wantErr: ErrInvalidTemplate,
		},
		{
			name:    "opacity above one",
			tmpl:    &Template{Header: Header{LogoOpacity: 1.5}},
			wantErr: ErrInvalidTemplate,
		},
		{
			name:    "unknown logo placement",
			tmpl:    &Template{Header: Header{LogoPlacement: "top"}},
			wantErr: ErrInvalidTemplate,
		},
		{
			name:    "unknown border style",
			tmpl:    &Template{Table: TableStyle{BorderStyle: "double"}},
			wantErr: ErrInvalidTemplate,
		},
		{
			name:    "unknown orientation",
			tmpl:    &Template{Header: Header{TitleOrientation: "diagonal"}},
			wantErr: ErrInvalidTemplate,
		},
		{
			name:    "negative column width",
			tmpl:    &Template{Table: TableStyle{Columns: []ColumnStyle{{Width: -2}}}},
			wantErr: ErrInvalidTemplate,
		},
		{
			name: "invalid color is not structural",
			tmpl: &Template{ColorScheme: ColorScheme{Primary: "blue"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.tmpl.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTemplate_CheckColors(t *testing.T) {
	t.Parallel()

	if err := (&Template{ColorScheme: ColorScheme{Primary: "#abcdef"}}).CheckColors(); err != nil {
		t.Errorf("CheckColors() = %v, want nil", err)
	}

	err := (&Template{Sections: Sections{Details: Section{BackgroundColor: "#12"}}}).CheckColors()
	if !errors.Is(err, ErrInvalidColor) {
		t.Errorf("CheckColors() = %v, want ErrInvalidColor", err)
	}

	several := &Template{
		ColorScheme: ColorScheme{Accent: "blue"},
		Header:      Header{BorderColor: "#zzzzzz"},
		Table:       TableStyle{CellStyle: TextStyle{Color: "red"}},
	}
	want := `colorScheme.accent "blue"`
	for range 20 {
		if err := several.CheckColors(); err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("CheckColors() = %v, want first field %s", err, want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		r, g, b uint8
		ok      bool
	}{
		{"#2962FF", 0x29, 0x62, 0xFF, true},
		{"2962ff", 0x29, 0x62, 0xFF, true},
		{"#000000", 0, 0, 0, true},
		{"#FFF", 0, 0, 0, false},
		{"#GGGGGG", 0, 0, 0, false},
		{"", 0, 0, 0, false},
		{"##2962FF", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			r, g, b, ok := ParseHexColor(tt.in)
			if ok != tt.ok || r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("ParseHexColor(%q) = (%d,%d,%d,%v), want (%d,%d,%d,%v)",
					tt.in, r, g, b, ok, tt.r, tt.g, tt.b, tt.ok)
			}
		})
	}
}

func TestLookupColorScheme(t *testing.T) {
	t.Parallel()

	cs, ok := LookupColorScheme(" Gold-Luxury ")
	if !ok {
		t.Fatal("gold-luxury not found")
	}
	if cs.Primary != "#C9A227" {
		t.Errorf("Primary = %q, want #C9A227", cs.Primary)
	}
	if _, ok := LookupColorScheme("neon"); ok {
		t.Error("unexpected scheme neon")
	}
	if n := len(ColorSchemeNames()); n != 5 {
		t.Errorf("len(ColorSchemeNames()) = %d, want 5", n)
	}
}

// ---------------------------------------------------------------------------
// TestDate - Short-form dates in YAML and JSON content
// ---------------------------------------------------------------------------

func TestDate_Decode(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

	t.Run("json short form", func(t *testing.T) {
		t.Parallel()

		var e Expense
		if err := json.Unmarshal([]byte(`{"date":"2025-03-04","description":"x","amount":1}`), &e); err != nil {
			t.Fatalf("json.Unmarshal: %v", err)
		}
		if !e.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", e.Date, want)
		}
	})

	t.Run("yaml short form", func(t *testing.T) {
		t.Parallel()

		var e Expense
		if err := yaml.Unmarshal([]byte("date: \"2025-03-04\"\ndescription: x\namount: 1\n"), &e); err != nil {
			t.Fatalf("yaml.Unmarshal: %v", err)
		}
		if !e.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", e.Date, want)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		var d Date
		if err := d.UnmarshalText([]byte("tomorrow")); err == nil {
			t.Error("UnmarshalText(tomorrow) = nil, want error")
		}
	})

	t.Run("json round trip keeps short form", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(NewDate(2025, time.March, 4))
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		if string(b) != `"2025-03-04"` {
			t.Errorf("json = %s, want \"2025-03-04\"", b)
		}
	})
}

func TestContent_Client(t *testing.T) {
	t.Parallel()

	if got := (Content{}).Client(); got != (Client{}) {
		t.Errorf("Client() = %+v, want zero", got)
	}
	c := Content{Matter: &Matter{Client: Client{Name: "Acme"}}}
	if got := c.Client().Name; got != "Acme" {
		t.Errorf("Client().Name = %q, want Acme", got)
	}
}
