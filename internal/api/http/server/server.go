package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPServer wraps an echo instance with address and lifecycle methods.
type HTTPServer struct {
	e        *echo.Echo
	addr     string
	certFile string
	keyFile  string
}

// NewHTTPServer creates an HTTPServer with the given echo instance and
// address.
func NewHTTPServer(e *echo.Echo, addr string) *HTTPServer {
	return &HTTPServer{e: e, addr: addr}
}

// NewHTTPSServer creates an HTTPServer that serves TLS with the given
// certificate files.
func NewHTTPSServer(e *echo.Echo, addr string, certFile string, keyFile string) *HTTPServer {
	return &HTTPServer{e: e, addr: addr, certFile: certFile, keyFile: keyFile}
}

// Start serves on the configured address until Stop is called.
func (s *HTTPServer) Start() error {
	var err error
	if s.certFile != "" {
		err = s.e.StartTLS(s.addr, s.certFile, s.keyFile)
	} else {
		err = s.e.Start(s.addr)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully stops the server.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
