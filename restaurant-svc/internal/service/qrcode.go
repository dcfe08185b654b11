package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(takeawayID string) ([]byte, error)
}

// DefaultQRGenerator encodes the takeaway tracking URL as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(takeawayID string) ([]byte, error) {
	return qrcode.Encode(TrackingURL(g.BaseURL, takeawayID), qrcode.Medium, 256)
}

func TrackingURL(baseURL, takeawayID string) string {
	return fmt.Sprintf("%s/takeaway/%s", strings.TrimRight(baseURL, "/"), takeawayID)
}
