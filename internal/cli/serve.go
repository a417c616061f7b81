package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bizcanvas/pkg/relay"
)

// serveCommand creates the serve command for running the relay server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen   string
		storeArg string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the relay server for shared canvas rooms",
		Long: `Run the relay server for shared canvas rooms.

The relay holds one replica per room, merges whatever participants send,
and fans edits out to everyone else. Room snapshots are kept in memory by
default; with --store mongo they survive relay restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Relay.Listen
			}
			if storeArg == "" {
				storeArg = cfg.Relay.Store
			}
			if mongoURI == "" {
				mongoURI = cfg.Relay.MongoURI
			}

			logger := loggerFromContext(cmd.Context())
			roomStore, cleanup, err := newRoomStore(cmd.Context(), storeArg, mongoURI)
			if err != nil {
				return err
			}
			defer cleanup()

			server := &http.Server{
				Addr:    listen,
				Handler: relay.NewServer(roomStore, logger).Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("relay listening", "addr", listen, "store", storeArg)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default: config, :8787)")
	cmd.Flags().StringVar(&storeArg, "store", "", "room store backend: memory (default), mongo")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI (with --store mongo)")
	return cmd
}

// newRoomStore builds the configured room store backend.
func newRoomStore(ctx context.Context, backend, mongoURI string) (relay.RoomStore, func(), error) {
	switch backend {
	case "", "memory":
		return relay.NewMemoryStore(), func() {}, nil
	case "mongo":
		if mongoURI == "" {
			return nil, nil, fmt.Errorf("--store mongo requires --mongo-uri (or relay.mongo_uri in the config)")
		}
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		sp := newSpinnerWithContext(connectCtx, "Connecting to MongoDB...")
		sp.Start()
		ms, err := relay.NewMongoStore(connectCtx, relay.MongoConfig{URI: mongoURI})
		sp.Stop()
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			ms.Close(closeCtx)
		}
		loggerFromContext(ctx).Info("room snapshots persisted to mongo")
		return ms, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown room store %q (memory or mongo)", backend)
	}
}
