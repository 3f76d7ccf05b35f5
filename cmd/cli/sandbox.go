package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowbaker/commerce-go/internal/auth"
	"github.com/flowbaker/commerce-go/internal/controllers"
	"github.com/flowbaker/commerce-go/internal/initialization"
	"github.com/flowbaker/commerce-go/internal/managers"
	"github.com/flowbaker/commerce-go/internal/server"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewSandboxCommand(container *initialization.ClientContainer) *cobra.Command {
	var (
		addr     string
		fixtures string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run a local platform that checks signatures and serves in-memory resources",
		Long: `Run a local stand-in for the commerce platform. Requests are verified with the
configured key pair and served from memory, optionally seeded from a YAML file
that maps collection paths (e.g. "orders" or "orders/14/shipments") to records.

Example:
  commerce sandbox --addr :8080 --fixtures fixtures.yaml
  commerce --api-url http://localhost:8080 list order`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSandbox(cmd.Context(), container, addr, fixtures, pageSize)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&fixtures, "fixtures", "", "YAML file with records to preload")
	cmd.Flags().IntVar(&pageSize, "page-size", controllers.DefaultPageSize, "Records per page when no limit is given")

	return cmd
}

func runSandbox(ctx context.Context, container *initialization.ClientContainer, addr, fixtures string, pageSize int) error {
	cfg, err := container.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	verifier, err := auth.NewAPISignatureVerifier(cfg.SharedKey, cfg.PrivateKey, cfg.HashAlgorithm)
	if err != nil {
		return err
	}

	resources := managers.NewResourceManager()
	if fixtures != "" {
		if err := resources.LoadFixtures(fixtures); err != nil {
			return err
		}
	}

	app := server.NewHTTPServer(server.HTTPServerDependencies{
		Verifier: verifier,
		ResourceController: controllers.NewResourceController(controllers.ResourceControllerDependencies{
			ResourceManager: resources,
			PageSize:        pageSize,
		}),
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		log.Info().Msg("Shutting down sandbox")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down sandbox")
		}
	}()

	log.Info().
		Str("addr", addr).
		Str("hash_algorithm", cfg.HashAlgorithm).
		Msg("Sandbox listening")

	return app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}
