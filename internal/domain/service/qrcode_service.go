package service

// QRCodeService defines the interface for QR code image generation.
type QRCodeService interface {
	// GenerateRoomQR renders the room's signed token as a PNG QR code.
	GenerateRoomQR(token string) ([]byte, error)
}
