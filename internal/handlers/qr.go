package handlers

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// accountQR renders an account number as an inline PNG data URI for the
// detail view.
func accountQR(accountNumber string) (template.URL, error) {
	qr, err := qrcode.New(accountNumber, qrcode.Medium)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(192)); err != nil {
		return "", err
	}

	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}
