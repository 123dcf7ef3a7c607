package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateRoomQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	png, err := service.GenerateRoomQR("5vJx0m3mR0yDq2kq1cW8cQ")
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}

func TestQRCodeService_GenerateRoomQR_SizesVary(t *testing.T) {
	small := NewQRCodeService(128, "L")
	large := NewQRCodeService(512, "L")

	smallPNG, err := small.GenerateRoomQR("room-token")
	require.NoError(t, err)
	largePNG, err := large.GenerateRoomQR("room-token")
	require.NoError(t, err)

	assert.Greater(t, len(largePNG), len(smallPNG))
}
