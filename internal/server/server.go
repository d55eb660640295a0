package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/lootledger/engine/internal/catalog"
	"github.com/lootledger/engine/internal/crafting"
	"github.com/lootledger/engine/internal/economy"
	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/handler"
	"github.com/lootledger/engine/internal/logger"
	"github.com/lootledger/engine/internal/loot"
	"github.com/lootledger/engine/internal/metrics"
	"github.com/lootledger/engine/internal/player"
	"github.com/lootledger/engine/internal/store"
	"github.com/lootledger/engine/internal/worker"
)

type Server struct {
	httpServer      *http.Server
	store           store.Store
	lootService     loot.Service
	economyService  economy.Service
	craftingService crafting.Service
	playerService   player.Service
	catalogService  catalog.Service
}

// Deps bundles everything the router wires together.
type Deps struct {
	Session         *game.Session
	Store           store.Store
	LootService     loot.Service
	EconomyService  economy.Service
	CraftingService crafting.Service
	PlayerService   player.Service
	CatalogService  catalog.Service
	Resolver        *catalog.Resolver
	Autosave        *worker.Autosave
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, deps Deps) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	monitor := NewAbuseMonitor()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, monitor))
	r.Use(ThrottleMiddleware(trustedProxies, monitor))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info", handler.HandleGetInfo(deps.Session))

		// Loot routes
		r.Post("/draw", handler.HandleDraw(deps.LootService))
		r.Get("/tables", handler.HandleGetTables(deps.LootService))
		r.Get("/tables/odds", handler.HandleGetOdds(deps.LootService))

		// Economy routes
		r.Post("/sell", handler.HandleSellName(deps.EconomyService, deps.Resolver))
		r.Post("/sell/index", handler.HandleSellIndex(deps.EconomyService))
		r.Get("/shop", handler.HandleGetShop(deps.EconomyService))
		r.Post("/shop/buy", handler.HandleBuy(deps.EconomyService, deps.Resolver))

		// Crafting routes
		r.Post("/craft", handler.HandleCraft(deps.CraftingService, deps.Resolver))
		r.Post("/enchant", handler.HandleEnchant(deps.CraftingService))
		r.Get("/recipes", handler.HandleGetRecipes(deps.CraftingService))

		// Player routes
		r.Get("/player", handler.HandleGetPlayer(deps.PlayerService))
		r.Get("/players", handler.HandleListPlayers(deps.PlayerService))
		r.Route("/player", func(r chi.Router) {
			r.Post("/register", handler.HandleRegister(deps.PlayerService))
			r.Post("/remove", handler.HandleRemove(deps.PlayerService))
			r.Post("/equip", handler.HandleEquip(deps.PlayerService))
			r.Post("/unequip", handler.HandleUnequip(deps.PlayerService))
			r.Post("/upgrade", handler.HandleConsumeUpgrade(deps.PlayerService))
			r.Post("/use", handler.HandleUseConsumable(deps.PlayerService, deps.Resolver))
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/item", handler.HandleCreateItem(deps.CatalogService))
			r.Put("/item", handler.HandleUpdateItem(deps.CatalogService))
			r.Delete("/item", handler.HandleDeleteItem(deps.CatalogService))
			r.Post("/table", handler.HandleCreateTable(deps.CatalogService))
			r.Delete("/table", handler.HandleDeleteTable(deps.CatalogService))
			r.Post("/table/entry", handler.HandleAddTableEntry(deps.CatalogService))
			r.Delete("/table/entry", handler.HandleRemoveTableEntry(deps.CatalogService))
			r.Post("/currency/grant", handler.HandleGrantCurrency(deps.PlayerService))
			r.Post("/currency/take", handler.HandleTakeCurrency(deps.PlayerService))
			r.Post("/give", handler.HandleGiveItem(deps.PlayerService, deps.Resolver))
			r.Post("/save", handler.HandleSave(deps.Autosave))
			r.Post("/cache/purge", handler.HandlePurgeCache(deps.Resolver))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		store:           deps.Store,
		lootService:     deps.LootService,
		economyService:  deps.EconomyService,
		craftingService: deps.CraftingService,
		playerService:   deps.PlayerService,
		catalogService:  deps.CatalogService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
