package milter

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/d--j/go-milter"

	"github.com/zpam/nbspam/pkg/config"
	"github.com/zpam/nbspam/pkg/learning"
)

// Server serves milter connections, classifying every message with one
// trained classifier.
type Server struct {
	config    config.MilterConfig
	milterSrv *milter.Server
}

// NewServer creates a new milter server around classifier
func NewServer(cfg config.MilterConfig, classifier learning.Classifier) (*Server, error) {
	if classifier == nil {
		return nil, fmt.Errorf("milter server needs a classifier")
	}

	// Only headers and body matter; verdicts are added as headers.
	milterOpts := []milter.Option{
		milter.WithProtocol(milter.OptNoConnect | milter.OptNoHelo | milter.OptNoRcptTo),
		milter.WithAction(milter.OptAddHeader),
		milter.WithMilter(func() milter.Milter {
			return NewHandler(cfg, classifier)
		}),
	}

	if cfg.ReadTimeoutMs > 0 {
		milterOpts = append(milterOpts, milter.WithReadTimeout(
			time.Duration(cfg.ReadTimeoutMs)*time.Millisecond))
	}
	if cfg.WriteTimeoutMs > 0 {
		milterOpts = append(milterOpts, milter.WithWriteTimeout(
			time.Duration(cfg.WriteTimeoutMs)*time.Millisecond))
	}

	return &Server{
		config:    cfg,
		milterSrv: milter.NewServer(milterOpts...),
	}, nil
}

// Serve accepts connections on listener until ctx is cancelled or the
// server fails.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.milterSrv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(s.config.GracefulShutdownTimeout)*time.Millisecond,
		)
		defer cancel()

		if err := s.milterSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown milter server: %w", err)
		}
		return ctx.Err()

	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("milter server error: %w", err)
		}
		return nil
	}
}

// Close closes the milter server
func (s *Server) Close() error {
	return s.milterSrv.Close()
}

// MilterCount returns how many handlers have been created so far.
func (s *Server) MilterCount() uint64 {
	return s.milterSrv.MilterCount()
}
