package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

//go:embed presets/*.yaml
var presets embed.FS

// DefaultPresetName is the preset the CLI falls back to when none is given.
const DefaultPresetName = "classic"

// Preset loads an embedded preset by name (case-insensitive, without the
// .yaml extension) and expands its named color scheme. The result is a
// partial template: resolve it before rendering.
func Preset(name string) (model.Template, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := ValidateAssetName(name); err != nil {
		return model.Template{}, err
	}

	data, err := presets.ReadFile("presets/" + name + ".yaml")
	if err != nil {
		return model.Template{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}

	var t model.Template
	if err := yamlutil.UnmarshalStrict(data, &t); err != nil {
		return model.Template{}, fmt.Errorf("preset %q: %w", name, err)
	}
	if cs, ok := model.LookupColorScheme(t.ColorScheme.Name); ok && t.ColorScheme.Primary == "" {
		t.ColorScheme = cs
	}
	return t, nil
}

// PresetNames lists the embedded presets, sorted.
func PresetNames() []string {
	entries, err := fs.ReadDir(presets, "presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
