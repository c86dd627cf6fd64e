package local

type Result struct {
	Errors []string `json:"errors"`
}

type HideResponse struct {
	ID          string `json:"id"`
	Stego       string `json:"stego_png"` // base64, see Format
	Format      string `json:"format"`
	QR          string `json:"qr_png"` // base64
	Key         string `json:"key"`
	Fingerprint string `json:"key_fingerprint"`
}

type RevealResponse struct {
	Message string `json:"message"`
	Aux     string `json:"aux"`
}

type CapacityResponse struct {
	Bits       int    `json:"bits"`
	MaxMessage int    `json:"max_message"` // bytes of UTF-8 text
	Format     string `json:"format"`
}
