package certgen

import (
	"fmt"
	"image"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Module count is small, 256px keeps the code sharp at print scale
const qrImageSize = 256

// GenerateQRCode returns the QR code of link as an image without quiet zone.
func GenerateQRCode(link string, size int) (image.Image, error) {
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	q.DisableBorder = true
	return q.Image(size), nil
}

// VerificationLink fills the record id into pattern, e.g. "https://example.com/verify/%s".
func VerificationLink(pattern string, record CertificateRecord) string {
	return fmt.Sprintf(pattern, record.ID())
}

// ValidateQRURLPattern accepts patterns holding exactly one %s and no other verb,
// "%%" stays a literal percent sign.
func ValidateQRURLPattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("%w: QR URL pattern is empty", ErrInvalidQRURLPattern)
	}

	verbs := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '%' {
			i++
			continue
		}
		if i+1 >= len(pattern) || pattern[i+1] != 's' {
			return fmt.Errorf("%w: %q may only use %%s for the certificate id", ErrInvalidQRURLPattern, pattern)
		}
		verbs++
		i++
	}

	if verbs != 1 {
		return fmt.Errorf("%w: %q needs exactly one %%s for the certificate id, found %d", ErrInvalidQRURLPattern, pattern, verbs)
	}
	return nil
}
