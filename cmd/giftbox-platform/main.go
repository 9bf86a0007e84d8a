package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftboxhq/giftbox-platform/internal/api/handlers"
	"github.com/giftboxhq/giftbox-platform/internal/api/middleware"
	"github.com/giftboxhq/giftbox-platform/internal/cache"
	"github.com/giftboxhq/giftbox-platform/internal/config"
	"github.com/giftboxhq/giftbox-platform/internal/health"
	"github.com/giftboxhq/giftbox-platform/internal/metrics"
	repository "github.com/giftboxhq/giftbox-platform/internal/repositories"
	service "github.com/giftboxhq/giftbox-platform/internal/services"
	"github.com/giftboxhq/giftbox-platform/pkg/sendgrid"
	"github.com/giftboxhq/giftbox-platform/pkg/stripe"
)

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	otpRepo := repository.NewOtpRepo(redisClient, &cfg.OTP)
	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	notificationService := service.NewNotificationService(repos.Notification, emailService)
	userService := service.NewUserService(repos.User, rateLimitRepo, cfg.Security.JWTKey)
	catalogService := service.NewCatalogService(repos.Product, redisCache, cfg.Cache.AvailableTTL)
	cartService := service.NewCartService(repos.Cart, repos.Product, repos.Order, stripeClient, cfg.Stripe.Currency)
	otpService := service.NewOtpService(otpRepo, notificationService, cfg.OTP.MaxAttempts, cfg.OTP.CodeTTL)
	orderService := service.NewOrderService(repos.Order, repos.Product, otpRepo, notificationService)

	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	otpHandler := handlers.NewOtpHandler(otpService)
	orderHandler := handlers.NewOrderHandler(orderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/users/profile", authMiddleware.Authenticate(userHandler.Profile()))

	routerMux.HandleFunc("GET /api/inventory", catalogHandler.ListInventory())
	routerMux.HandleFunc("GET /api/available-inventory", catalogHandler.ListAvailableInventory())
	routerMux.HandleFunc("POST /api/inventory", authMiddleware.Authenticate(catalogHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/inventory/{sku}", catalogHandler.GetProduct())
	routerMux.HandleFunc("PUT /api/inventory/{sku}", authMiddleware.Authenticate(catalogHandler.UpdateProduct()))

	routerMux.HandleFunc("GET /api/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/cart/add", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/cart/update", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/cart/remove", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/cart/clear", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("GET /api/cart/count", authMiddleware.Authenticate(cartHandler.ItemCount()))
	routerMux.HandleFunc("POST /api/cart/checkout", authMiddleware.Authenticate(cartHandler.Checkout()))

	routerMux.HandleFunc("POST /api/otp/send-otp", otpHandler.SendOtp())
	routerMux.HandleFunc("POST /api/otp/verify-otp", otpHandler.VerifyOtp())

	routerMux.HandleFunc("POST /api/orders", authMiddleware.Authenticate(orderHandler.CreateOrder()))
	routerMux.HandleFunc("GET /api/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("PATCH /api/orders/{id}/status", authMiddleware.Authenticate(orderHandler.UpdateOrderStatus()))

	routerMux.HandleFunc("POST /api/notifications/email", authMiddleware.Authenticate(notificationHandler.SendEmail()))
	routerMux.HandleFunc("GET /api/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully")
	}

}
