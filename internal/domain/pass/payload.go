package pass

import (
	"encoding/base64"
	"encoding/json"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// Payload is the tuple rendered into the scannable pass. Name and IDNumber
// must already be masked by the caller; the payload never carries the raw
// identity number or any phone number.
type Payload struct {
	Code      string    `json:"code"`
	VisitTime time.Time `json:"visit_time"`
	Name      string    `json:"name"`
	IDNumber  string    `json:"id_number"`
}

const qrSize = 256

// RenderQR encodes the payload as a QR code and returns it as a PNG data
// URI, ready for an <img> tag.
func RenderQR(p Payload) (string, error) {
	content, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	png, err := qrcode.Encode(string(content), qrcode.Medium, qrSize)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
