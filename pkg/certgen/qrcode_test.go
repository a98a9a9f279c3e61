package certgen

import (
	"errors"
	"testing"
)

func TestValidateQRURLPattern(t *testing.T) {
	tests := []struct {
		pattern string
		valid   bool
	}{
		{"https://certificates.example.com/verify/%s", true},
		{"https://example.com/verify?id=%s&pct=100%%", true},
		{"https://certificates.example.com/verify", false},
		{"https://example.com/%s/%s", false},
		{"https://example.com/%d", false},
		{"https://example.com/%v", false},
		{"https://example.com/%", false},
		{"  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			err := ValidateQRURLPattern(tt.pattern)
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidQRURLPattern) {
				t.Errorf("expected ErrInvalidQRURLPattern, got %v", err)
			}
		})
	}
}

func TestVerificationLink(t *testing.T) {
	link := VerificationLink("https://certificates.example.com/verify/%s", sampleRecord())
	if link != "https://certificates.example.com/verify/"+sampleRecord().ID() {
		t.Errorf("unexpected link %s", link)
	}
}
