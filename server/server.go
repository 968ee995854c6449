// Package server exposes the formatter over HTTP and websockets for editor
// integrations.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gqlfmt/format"
	"gqlfmt/gqlerror"
	"gqlfmt/printer"
)

const maxSourceSize = 1 << 20

type (
	// PrettifyRequest asks for source to be formatted. Options override the
	// server defaults field by field.
	PrettifyRequest struct {
		Source  string          `json:"source" validate:"required,max=1048576"`
		Options *RequestOptions `json:"options,omitempty"`
	}

	RequestOptions struct {
		Indentation          *string `json:"indentation,omitempty" validate:"omitempty,max=16"`
		MaxLineLength        *int    `json:"maxLineLength,omitempty" validate:"omitempty,min=1,max=1000"`
		PreserveComments     *bool   `json:"preserveComments,omitempty"`
		Pretty               *bool   `json:"pretty,omitempty"`
		CompactSelectionSets *bool   `json:"compactSelectionSets,omitempty"`
	}

	PrettifyResponse struct {
		Formatted string `json:"formatted"`
	}

	ErrorResponse struct {
		Error  string `json:"error"`
		Line   int    `json:"line,omitempty"`
		Column int    `json:"column,omitempty"`
	}
)

type Server struct {
	logger   *zap.Logger
	defaults printer.Options
	validate *validator.Validate
	upgrader websocket.Upgrader
	router   chi.Router
}

// New builds the router. origins lists the origins allowed by CORS; empty
// allows any.
func New(logger *zap.Logger, defaults printer.Options, origins []string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(origins) == 0 {
		origins = []string{"https://*", "http://*"}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		return name
	})

	s := &Server{
		logger:   logger,
		defaults: defaults,
		validate: validate,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Get("/ws", s.websocket)
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Use(chimw.AllowContentType("application/json"))
		r.Post("/prettify", s.prettify)
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("address", addr))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown started")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			s.logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("size", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimw.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) prettify(w http.ResponseWriter, r *http.Request) {
	var req PrettifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSourceSize+4096)).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	status, body := s.handle(req)
	respondWithJSON(w, status, body)
}

// handle formats one request and returns the status and body of the reply.
func (s *Server) handle(req PrettifyRequest) (int, any) {
	if err := s.validate.Struct(req); err != nil {
		return http.StatusBadRequest, ErrorResponse{Error: validationMessage(err)}
	}

	formatted, err := format.Source(req.Source, s.options(req.Options))
	if err != nil {
		var gqlErr *gqlerror.Error
		if errors.As(err, &gqlErr) {
			return http.StatusUnprocessableEntity, ErrorResponse{
				Error:  gqlErr.Message,
				Line:   gqlErr.Line,
				Column: gqlErr.Column,
			}
		}
		s.logger.Error("failed to format source", zap.Error(err))
		return http.StatusInternalServerError, ErrorResponse{Error: "error encountered"}
	}
	return http.StatusOK, PrettifyResponse{Formatted: formatted}
}

func (s *Server) options(o *RequestOptions) printer.Options {
	opts := s.defaults
	if o == nil {
		return opts
	}
	if o.Indentation != nil {
		opts.IndentationStep = *o.Indentation
	}
	if o.MaxLineLength != nil {
		opts.MaxLineLength = *o.MaxLineLength
	}
	if o.PreserveComments != nil {
		opts.PreserveComments = *o.PreserveComments
	}
	if o.Pretty != nil {
		opts.Pretty = *o.Pretty
	}
	if o.CompactSelectionSets != nil {
		opts.CompactSelectionSets = *o.CompactSelectionSets
	}
	return opts
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}
	fe := errs[0]
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return fmt.Sprintf("%s failed the %s=%s check", fe.Field(), fe.Tag(), fe.Param())
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
