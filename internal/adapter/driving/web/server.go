// Package web serves the interactive dashboard: an HTML page, a JSON API,
// chart images and a websocket for live filter updates.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

const shutdownTimeout = 10 * time.Second

// DashboardService is what the web adapter needs from the application layer.
type DashboardService interface {
	Options(ctx context.Context) (entity.FilterOptions, error)
	BuildDashboard(ctx context.Context, sel entity.Selection) (entity.Dashboard, error)
	RenderView(d entity.Dashboard, view entity.ViewID, format repository.ChartFormat) ([]byte, error)
}

// Server is the HTTP front end of the dashboard.
type Server struct {
	addr     string
	svc      DashboardService
	console  types.ConsoleInterface
	router   *mux.Router
	upgrader websocket.Upgrader
}

// NewServer creates the server and registers its routes.
func NewServer(addr string, svc DashboardService, console types.ConsoleInterface) *Server {
	s := &Server{
		addr:    addr,
		svc:     svc,
		console: console,
		router:  mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.console.LogSuccess("Dashboard listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.console.LogInfo("Shutting down web server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
