// Package roomtoken signs and verifies the opaque tokens embedded in room QR codes.
//
// A token is base64url(roomID || HMAC-SHA256(key, roomID)). The signature binds
// the token to one room so a printed code cannot be rebound or forged.
package roomtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"playden/config"
	"playden/internal/domain/service"
)

const signatureSize = sha256.Size

// hmacTokenService is a concrete implementation of the RoomTokenService interface.
type hmacTokenService struct {
	key []byte
}

// NewHMACTokenService is the constructor for hmacTokenService.
func NewHMACTokenService(cfg *config.Config) (service.RoomTokenService, error) {
	if cfg.RoomQR == nil || cfg.RoomQR.SigningKey == "" {
		return nil, errors.New("room QR signing key must be provided")
	}

	return &hmacTokenService{key: []byte(cfg.RoomQR.SigningKey)}, nil
}

// Sign produces an opaque token for the given room.
func (s *hmacTokenService) Sign(roomID uuid.UUID) (string, error) {
	if roomID == uuid.Nil {
		return "", errors.New("room ID must not be nil")
	}

	payload := roomID[:]
	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)

	token := make([]byte, 0, len(payload)+signatureSize)
	token = append(token, payload...)
	token = mac.Sum(token)

	return base64.RawURLEncoding.EncodeToString(token), nil
}

// Verify checks the token signature and returns the room ID it was issued for.
func (s *hmacTokenService) Verify(token string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to decode token")
	}

	if len(raw) != 16+signatureSize {
		return uuid.Nil, errors.New("malformed token")
	}

	payload, signature := raw[:16], raw[16:]

	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	if !hmac.Equal(signature, mac.Sum(nil)) {
		return uuid.Nil, errors.New("token signature mismatch")
	}

	roomID, err := uuid.FromBytes(payload)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse room ID")
	}

	return roomID, nil
}
