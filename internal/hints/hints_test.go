package hints

// Notes:
// - Tests that replace the package-level IsInContainer cannot use
//   t.Parallel(); they restore it on exit.

import (
	"strings"
	"testing"
)

func withContainer(t *testing.T, inside bool) {
	t.Helper()

	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return inside }
}

func TestForStoreConnect(t *testing.T) {
	withContainer(t, false)

	tests := []struct {
		driver string
		want   string
	}{
		{driver: "postgres", want: "INVOICE2PDF_STORE_DSN"},
		{driver: "supabase", want: "INVOICE2PDF_STORE_API_KEY"},
		{driver: "file", want: "writable"},
	}
	for _, tt := range tests {
		hint := ForStoreConnect(tt.driver)
		if !strings.HasPrefix(hint, "\n  hint: ") || !strings.Contains(hint, tt.want) {
			t.Errorf("ForStoreConnect(%q) = %q, want mention of %q", tt.driver, hint, tt.want)
		}
	}
	if got := ForStoreConnect("unknown"); got != "" {
		t.Errorf("ForStoreConnect(unknown) = %q, want empty", got)
	}
}

func TestForStoreConnect_InDocker(t *testing.T) {
	withContainer(t, true)

	if hint := ForStoreConnect("postgres"); !strings.Contains(hint, "Docker") {
		t.Errorf("hint = %q, want Docker advice", hint)
	}
}

func TestForListen(t *testing.T) {
	withContainer(t, true)

	if hint := ForListen("127.0.0.1:8080"); !strings.Contains(hint, "outside the container") {
		t.Errorf("loopback in container hint = %q", hint)
	}
	if hint := ForListen(":8080"); strings.Contains(hint, "container") || !strings.Contains(hint, "--addr") {
		t.Errorf("wildcard hint = %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"firm.yaml", "/home/nm/.config/go-invoice2pdf/firm.yaml"})
	if !strings.Contains(hint, "--config") {
		t.Error("expected --config suggestion")
	}
	if !strings.Contains(hint, "create /home/nm/.config/go-invoice2pdf/firm.yaml") {
		t.Errorf("expected user config path suggestion, got %q", hint)
	}

	if hint := ForConfigNotFound(nil); strings.Contains(hint, "create") {
		t.Errorf("no paths should not suggest creating one: %q", hint)
	}
}

func TestForPresetNotFound(t *testing.T) {
	t.Parallel()

	if got := ForPresetNotFound(nil); got != "" {
		t.Errorf("ForPresetNotFound(nil) = %q, want empty", got)
	}
	if got := ForPresetNotFound([]string{"classic", "modern"}); got != "\n  hint: available: classic, modern" {
		t.Errorf("ForPresetNotFound() = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"output":   ForOutputDirectory(),
		"content":  ForContentParse(),
		"template": ForTemplateInvalid(),
		"logo":     ForLogo(),
		"timeout":  ForRenderTimeout(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") || len(hint) < 20 {
			t.Errorf("%s hint = %q", name, hint)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q", got)
	}
}
