// Package qrcode builds public check-in links and renders them as QR codes.
package qrcode

import (
	"fmt"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Linker implements domain.CheckInLinker for a public base URL.
type Linker struct {
	baseURL string
	size    int
}

func NewLinker(baseURL string, size int) *Linker {
	if size <= 0 {
		size = defaultSize
	}
	return &Linker{baseURL: strings.TrimSuffix(baseURL, "/"), size: size}
}

// URL returns the public check-in link of a position.
func (l *Linker) URL(positionID string) string {
	return l.baseURL + "/checkin/" + positionID
}

// PNG encodes the check-in link as a QR code image.
func (l *Linker) PNG(positionID string) ([]byte, error) {
	png, err := qr.Encode(l.URL(positionID), qr.Medium, l.size)
	if err != nil {
		return nil, fmt.Errorf("encode check-in qr code: %w", err)
	}
	return png, nil
}
