package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "preset name", input: "formal"},
		{name: "name with hyphen", input: "gold-luxury"},
		{name: "name with underscore", input: "my_preset"},
		{name: "name with numbers", input: "preset2"},
		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "presets/formal", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "presets\\formal", wantErr: ErrInvalidAssetName},
		{name: "parent traversal", input: "../secret", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "formal.yaml", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
