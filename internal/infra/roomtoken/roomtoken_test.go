package roomtoken

import (
	"encoding/base64"
	"testing"

	"playden/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenTestConfig(key string) *config.Config {
	return &config.Config{RoomQR: &config.RoomQRConfig{SigningKey: key}}
}

func TestHMACTokenService_SignAndVerify(t *testing.T) {
	service, err := NewHMACTokenService(newTokenTestConfig("test-signing-key"))
	require.NoError(t, err)

	roomID := uuid.New()

	token, err := service.Sign(roomID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	verified, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, roomID, verified)
}

func TestHMACTokenService_Verify_TamperedToken(t *testing.T) {
	service, err := NewHMACTokenService(newTokenTestConfig("test-signing-key"))
	require.NoError(t, err)

	token, err := service.Sign(uuid.New())
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)

	// Flip one bit of the room ID, rebinding the token to another room.
	raw[0] ^= 0x01
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	_, err = service.Verify(tampered)
	assert.Error(t, err)
}

func TestHMACTokenService_Verify_WrongKey(t *testing.T) {
	signer, err := NewHMACTokenService(newTokenTestConfig("signer-key"))
	require.NoError(t, err)
	verifier, err := NewHMACTokenService(newTokenTestConfig("other-key"))
	require.NoError(t, err)

	token, err := signer.Sign(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestHMACTokenService_Verify_Malformed(t *testing.T) {
	service, err := NewHMACTokenService(newTokenTestConfig("test-signing-key"))
	require.NoError(t, err)

	_, err = service.Verify("!!!not-base64!!!")
	assert.Error(t, err)

	_, err = service.Verify(base64.RawURLEncoding.EncodeToString([]byte("too short")))
	assert.Error(t, err)
}

func TestHMACTokenService_Sign_NilRoomID(t *testing.T) {
	service, err := NewHMACTokenService(newTokenTestConfig("test-signing-key"))
	require.NoError(t, err)

	_, err = service.Sign(uuid.Nil)
	assert.Error(t, err)
}

func TestNewHMACTokenService_MissingKey(t *testing.T) {
	_, err := NewHMACTokenService(&config.Config{})
	assert.Error(t, err)

	_, err = NewHMACTokenService(newTokenTestConfig(""))
	assert.Error(t, err)
}
