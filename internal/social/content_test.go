package social

import (
	"errors"
	"testing"
)

func TestValidatePostInput(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		imageRefs []string
		wantErr   bool
	}{
		{
			name:      "body only",
			body:      "hello world",
			imageRefs: nil,
			wantErr:   false,
		},
		{
			name:      "images only",
			body:      "",
			imageRefs: []string{"img/a.jpg"},
			wantErr:   false,
		},
		{
			name:      "body and images",
			body:      "caption",
			imageRefs: []string{"img/a.jpg", "img/b.jpg"},
			wantErr:   false,
		},
		{
			name:      "empty body and no images",
			body:      "",
			imageRefs: nil,
			wantErr:   true,
		},
		{
			name:      "whitespace body and no images",
			body:      "   \t",
			imageRefs: []string{},
			wantErr:   true,
		},
		{
			name:      "blank image reference",
			body:      "caption",
			imageRefs: []string{"img/a.jpg", "  "},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostInput(tt.body, tt.imageRefs)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOperation) {
					t.Errorf("ValidatePostInput() = %v, want ErrInvalidOperation", err)
				}
			} else if err != nil {
				t.Errorf("ValidatePostInput() = %v, want nil", err)
			}
		})
	}
}
