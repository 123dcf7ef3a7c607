// Package storage archives room QR posters in a blob bucket.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selected by URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"

	"playden/config"
	"playden/internal/domain/service"
)

// posterStore is a concrete implementation of the PosterStore interface on
// top of a gocloud.dev blob bucket.
type posterStore struct {
	bucket *blob.Bucket
}

// StoreParams holds dependencies for PosterStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewPosterStore opens the configured bucket. When no bucket is configured a
// no-op store is returned and posters are simply not archived.
func NewPosterStore(params StoreParams) (service.PosterStore, error) {
	cfg := params.Config.PosterBucket
	if cfg == nil || cfg.URL == "" {
		params.Logger.Info("Poster bucket not configured, poster archival disabled")

		return &noopPosterStore{}, nil
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open poster bucket %s", cfg.URL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return &posterStore{bucket: bucket}, nil
}

// SaveRoomPoster stores the PNG poster for a room.
func (s *posterStore) SaveRoomPoster(ctx context.Context, roomID uuid.UUID, png []byte) error {
	opts := &blob.WriterOptions{ContentType: "image/png"}
	if err := s.bucket.WriteAll(ctx, posterKey(roomID), png, opts); err != nil {
		return errors.Wrap(err, "failed to write poster")
	}

	return nil
}

// LoadRoomPoster retrieves a previously archived poster.
func (s *posterStore) LoadRoomPoster(ctx context.Context, roomID uuid.UUID) ([]byte, error) {
	png, err := s.bucket.ReadAll(ctx, posterKey(roomID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read poster")
	}

	return png, nil
}

func posterKey(roomID uuid.UUID) string {
	return fmt.Sprintf("rooms/%s/qr-poster.png", roomID)
}

// noopPosterStore is used when no bucket is configured.
type noopPosterStore struct{}

func (s *noopPosterStore) SaveRoomPoster(ctx context.Context, roomID uuid.UUID, png []byte) error {
	return nil
}

func (s *noopPosterStore) LoadRoomPoster(ctx context.Context, roomID uuid.UUID) ([]byte, error) {
	return nil, errors.New("poster archival disabled")
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewPosterStore),
)
