package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the order's tracking page.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g *DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	return qrcode.Encode(fmt.Sprintf("%s/api/orders/%d", g.BaseURL, orderID), qrcode.Medium, 256)
}
