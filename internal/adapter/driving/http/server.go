package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

const (
	shutdownTimeout = 5 * time.Second
	// DefaultPageSize é o número de linhas por página da tabela do dashboard.
	DefaultPageSize = 6
)

// ChartRenderer é a parte do caso de uso usada pelo servidor.
type ChartRenderer interface {
	RenderChart(dataset *entity.Dataset, selection string) (entity.ChartDescription, error)
}

// Server serve o dashboard de página única e a API JSON sobre um dataset já carregado.
type Server struct {
	renderer         ChartRenderer
	dataset          *entity.Dataset
	console          types.ConsoleInterface
	defaultSelection string
	pageSize         int
}

// NewServer cria o servidor HTTP do dashboard.
func NewServer(renderer ChartRenderer, dataset *entity.Dataset, console types.ConsoleInterface, defaultSelection string) *Server {
	if defaultSelection == "" {
		defaultSelection = types.DefaultSelection
	}
	return &Server{
		renderer:         renderer,
		dataset:          dataset,
		console:          console,
		defaultSelection: defaultSelection,
		pageSize:         DefaultPageSize,
	}
}

// WithPageSize altera o número de linhas por página; valores < 1 são ignorados.
func (s *Server) WithPageSize(size int) *Server {
	if size > 0 {
		s.pageSize = size
	}
	return s
}

// Routes returns the dashboard router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/chart", s.handleChartHTML)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/fields", s.handleFields)
		r.Get("/dataset", s.handleDataset)
		r.Get("/chart", s.handleChart)
	})

	return r
}

// Run escuta em addr até o contexto ser cancelado.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.console.LogSuccess("Dashboard listening on %s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dashboard server failed: %w", err)
	case <-ctx.Done():
	}

	s.console.LogInfo("Shutting down dashboard...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down dashboard: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if status >= http.StatusInternalServerError {
			s.console.LogError("%s %s -> %d (%s)", r.Method, r.URL.RequestURI(), status, time.Since(start))
			return
		}
		s.console.LogInfo("%s %s -> %d (%s)", r.Method, r.URL.RequestURI(), status, time.Since(start))
	})
}

// selection retorna o campo pedido na query ou o padrão configurado.
func (s *Server) selection(r *http.Request) string {
	if sel := r.URL.Query().Get("selection"); sel != "" {
		return sel
	}
	return s.defaultSelection
}
