package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/auth"
	"github.com/mmynk/tripzy/internal/config"
	"github.com/mmynk/tripzy/internal/metrics"
	"github.com/mmynk/tripzy/internal/middleware"
	"github.com/mmynk/tripzy/internal/notify"
	"github.com/mmynk/tripzy/internal/planner"
	"github.com/mmynk/tripzy/internal/service"
	"github.com/mmynk/tripzy/internal/storage/sqlite"
	"github.com/mmynk/tripzy/web"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.cfg.ValidateServe(); err != nil {
				c.logger.Error("Configuration validation failed", "error", err)
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, c.cfg, c.logger)
		},
	}

	cmd.Flags().Int("port", 0, "HTTP port")
	_ = c.v.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port"))
	bindDB(c, cmd)
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		return err
	}
	defer closePublisher()

	var generator planner.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := planner.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("Failed to initialize Gemini", "error", err)
			return err
		}
		generator = g
		logger.Info("Planner using Gemini", "model", cfg.GeminiModel)
	} else {
		logger.Info("Planner using rule-based replies only")
	}

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithCurrencySymbol(cfg.CurrencySymbol),
	}

	handlers := service.Handlers{
		Auth:      service.NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, opts...),
		Trips:     service.NewTripService(store, opts...),
		Waitlist:  service.NewWaitlistService(store, publisher, opts...),
		Planner:   service.NewPlannerService(planner.New(generator, logger), opts...),
		Itinerary: service.NewItineraryService(store, opts...),
		Chat:      service.NewGroupChatService(store, opts...),
	}

	mux := http.NewServeMux()
	handlers.Mount(mux, connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager, api.PublicProcedures...),
		middleware.LoggingInterceptor(logger),
	))
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, "ok")
	})
	mux.Handle("/", web.Handler(web.Static(), "/tripzy.v1."))

	// h2c serves HTTP/2 without TLS, which connect clients use.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server failed", "error", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// newPublisher connects to the broker when one is configured. Without one,
// waitlist events are only logged.
func newPublisher(cfg *config.Config, logger *slog.Logger) (notify.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP disabled - no AMQP_URL provided")
		return nil, func() {}, nil
	}
	client, err := notify.NewAMQPClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { client.Close() }, nil
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
