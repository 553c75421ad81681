package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"tailscale.com/tsnet"

	"github.com/meltforce/liftlog/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (on the tailnet when tailscale is enabled)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			log := a.log
			log.Info("LiftLog starting", "version", Version, "storage", a.cfg.Storage.Path)

			srv := server.New(a.store, a.cfg.Auth.APIKey, log)
			srv.SetImportLedger(a.db)

			// Listen on the tailnet or a plain TCP address
			var listener net.Listener

			if a.cfg.Tailscale.Enabled {
				tsServer := &tsnet.Server{
					Hostname: a.cfg.Tailscale.Hostname,
					Dir:      a.cfg.Tailscale.StateDir,
				}
				if err := tsServer.Start(); err != nil {
					return err
				}
				defer tsServer.Close()

				lc, err := tsServer.LocalClient()
				if err != nil {
					return err
				}
				srv.SetTailscale(lc)

				listener, err = tsServer.Listen("tcp", ":80")
				if err != nil {
					return err
				}
				log.Info("tsnet server starting", "hostname", a.cfg.Tailscale.Hostname)
			} else {
				addr := a.cfg.Server.Addr()
				listener, err = net.Listen("tcp", addr)
				if err != nil {
					return err
				}
				log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
			}

			httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

			serveErr := make(chan error, 1)
			go func() {
				if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			// Graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-quit:
				log.Info("shutting down", "signal", sig)
			case err := <-serveErr:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				log.Error("shutdown error", "error", err)
			}
			if err := srv.Save(context.Background()); err != nil {
				log.Warn("final save failed", "error", err)
			}
			log.Info("server stopped")
			return nil
		},
	}
}
