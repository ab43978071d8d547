package server

import (
	"context"
	"errors"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/ValentinKolb/roads/lib/store"
	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/dispatcher"
	"github.com/ValentinKolb/roads/rpc/serializer"
	"github.com/ValentinKolb/roads/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("server")

// NewServer creates a new roads server
// It takes a config, a transport, the store and the serializer for the responses as parameters.
// The server owns the store from now on and closes it in Close.
//
// Usage:
//
//	s := server.NewServer(
//		*config,
//		tcp.NewTCPServerTransport(),
//		sqlStore,
//		serializer.NewJSONSerializer(),
//	)
//	defer s.Close()
//
//	if err := s.Serve(ctx); err != nil {
//		panic(err)
//	}
func NewServer(
	config common.ServerConfig,
	transport transport.IServerTransport,
	store store.IStore,
	serializer serializer.ISerializer,
) *Server {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	Logger.Infof("Created roads server")
	Logger.Infof(config.String())

	return &Server{
		config:     config,
		transport:  transport,
		store:      store,
		dispatcher: dispatcher.NewDispatcher(store, serializer),
	}
}

// Server ties the transport, the dispatcher and the store together
type Server struct {
	config     common.ServerConfig
	transport  transport.IServerTransport
	store      store.IStore
	dispatcher *dispatcher.Dispatcher

	closeOnce sync.Once
	closeErr  error
}

// Serve accepts connections until ctx is cancelled or the transport fails.
// The listening socket and the store are released when Serve returns, however it exits.
func (s *Server) Serve(ctx context.Context) error {
	s.transport.RegisterHandler(s.dispatcher.Handle)

	// Serve the metrics if configured
	if s.config.MetricsEndpoint != "" {
		go func() {
			Logger.Infof("Serving metrics on %s/metrics", s.config.MetricsEndpoint)
			if err := common.ServeMetrics(s.config.MetricsEndpoint); err != nil {
				Logger.Errorf("metrics endpoint failed: %v", err)
			}
		}()
	}

	// Close on cancellation, Listen then returns nil
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			Logger.Infof("Shutting down")
			_ = s.Close()
		case <-done:
		}
	}()

	err := s.transport.Listen(ctx, s.config)
	closeErr := s.Close()
	if err != nil {
		return err
	}
	return closeErr
}

// Addr returns the address the server listens on, see transport.IServerTransport
func (s *Server) Addr() string {
	if addr := s.transport.Addr(); addr != nil {
		return addr.String()
	}
	return ""
}

// Close releases the listening socket, ends the open sessions and closes the store.
// It is safe to call Close more than once.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = errors.Join(
			s.transport.Close(),
			s.store.Close(),
		)
	})
	return s.closeErr
}
