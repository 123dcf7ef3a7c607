package main

import (
	"context"
	"log/slog"
	"os"

	"playden/config"
	"playden/internal/delivery"
	"playden/internal/delivery/http"
	"playden/internal/delivery/http/middleware"
	"playden/internal/delivery/http/router/handler"
	"playden/internal/domain/service"
	"playden/internal/infra/auth"
	"playden/internal/infra/cache"
	logs "playden/internal/infra/log"
	"playden/internal/infra/notification"
	"playden/internal/infra/payment"
	"playden/internal/infra/persistence/postgres"
	"playden/internal/infra/pubsub"
	"playden/internal/infra/qrcode"
	"playden/internal/infra/roomtoken"
	"playden/internal/infra/storage"
	"playden/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		pubsub.Module,
		notification.Module,
		cache.Module,
		storage.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewWalletRepository,
			postgres.NewTransactionRepository,
			postgres.NewRoomRepository,
			postgres.NewSessionRepository,
			postgres.NewMenuRepository,
			postgres.NewOrderRepository,
			postgres.NewStatsRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			roomtoken.NewHMACTokenService,
			payment.NewStripeGateway,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewWalletService,
			impl.NewSessionService,
			impl.NewRoomService,
			impl.NewMenuService,
			impl.NewOrderService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewWalletHandler,
			handler.NewSessionHandler,
			handler.NewRoomHandler,
			handler.NewMenuHandler,
			handler.NewOrderHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
