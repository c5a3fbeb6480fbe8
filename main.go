package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/nyakazi-storefront/api"
	"github.com/raushankrgupta/nyakazi-storefront/cart"
	"github.com/raushankrgupta/nyakazi-storefront/catalog"
	"github.com/raushankrgupta/nyakazi-storefront/config"
	"github.com/raushankrgupta/nyakazi-storefront/order"
	"github.com/raushankrgupta/nyakazi-storefront/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	imageDir        string
	cleanupInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Nyakazi Organics web storefront",
	Long: `Serves the Nyakazi Organics shop: catalog pages, product details,
an in-memory cart per browser session and WhatsApp order hand-off.

Run without arguments to start the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()
		return utils.InitLogger(config.LogLevel)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = utils.Logger.Sync()
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&imageDir, "images", "public/images", "directory served under /images/")
		c.Flags().DurationVar(&cleanupInterval, "cleanup-interval", 10*time.Minute, "how often expired cart sessions are dropped")
	}
	rootCmd.AddCommand(serveCmd, catalogCmd, productCmd, orderPreviewCmd)
}

func orderFormatter() order.Formatter {
	return order.Formatter{StoreName: config.StoreName, Phone: config.WhatsAppNumber}
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	sessions := cart.NewRegistry(config.SessionTTL)
	utils.RegisterSessionGauge(sessions.Len)

	handler, err := api.NewHandler(api.Options{
		Catalog:       store,
		Sessions:      sessions,
		Orders:        orderFormatter(),
		SessionSecret: config.SessionSecret,
		SessionTTL:    config.SessionTTL,
		ImageDir:      imageDir,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.Logger.Info("Server starting", zap.String("port", config.Port), zap.Int("products", store.Len()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gctx, cleanupInterval, func(removed int) {
			utils.Logger.Info("expired cart sessions removed", zap.Int("removed", removed))
		})
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		utils.Logger.Info("Server shutting down")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
