package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// DefaultQRGenerator encodes the public share link of a stored plate.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(id string) string {
	return fmt.Sprintf("%s/plate.html?id=%s", strings.TrimRight(g.BaseURL, "/"), url.QueryEscape(id))
}

func (g DefaultQRGenerator) Generate(id string) ([]byte, error) {
	return qrcode.Encode(g.Link(id), qrcode.Medium, qrSize)
}
