// Package cli comandos de operación (veonctl): migraciones, tokens de desarrollo y estadísticas.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/veon-api/internal/application/sales"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/infrastructure/docstore"
	"github.com/jhoicas/veon-api/internal/infrastructure/postgres"
	"github.com/jhoicas/veon-api/internal/storage"
	"github.com/jhoicas/veon-api/pkg/config"
	"github.com/jhoicas/veon-api/pkg/jwt"
	"github.com/jhoicas/veon-api/pkg/logger"
	"github.com/spf13/cobra"
)

// NewRootCmd construye veonctl. La configuración se lee de env/.env igual que la API.
func NewRootCmd() *cobra.Command {
	var cfg *config.Config
	log := logger.NewNop()

	root := &cobra.Command{
		Use:           "veonctl",
		Short:         "Herramientas de operación de Veon API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				log = logger.NewWithWriter(cfg.App, cmd.ErrOrStderr())
			}
			return nil
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "logs a stderr")

	root.AddCommand(
		migrateCmd(func() *config.Config { return cfg }, func() *logger.Logger { return log }),
		tokenCmd(func() *config.Config { return cfg }),
		statsCmd(func() *config.Config { return cfg }, func() *logger.Logger { return log }),
	)
	return root
}

func migrateCmd(cfg func() *config.Config, log func() *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea el esquema del document store en PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			if c.Store.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate solo aplica a STORE_DRIVER=%s (actual: %s)", config.DriverPostgres, c.Store.Driver)
			}
			pool, err := postgres.NewPool(cmd.Context(), c.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := postgres.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			log().Info().Msg("migración aplicada")
			fmt.Fprintln(cmd.OutOrStdout(), "esquema listo")
			return nil
		},
	}
}

func tokenCmd(cfg func() *config.Config) *cobra.Command {
	var (
		uid, email, name, secret string
		minutes                  int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un bearer token de desarrollo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			if secret == "" {
				secret = c.JWT.Secret
			}
			if minutes <= 0 {
				minutes = c.JWT.Expiration
			}
			if uid == "" {
				return errors.New("--uid es requerido")
			}
			tok, err := jwt.Generate(secret, uid, jwt.Profile{Email: email, EmailVerified: email != "", Name: name}, c.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "uid del usuario")
	cmd.Flags().StringVar(&email, "email", "", "email del usuario")
	cmd.Flags().StringVar(&name, "name", "", "nombre visible")
	cmd.Flags().StringVar(&secret, "secret", "", "secreto HS256 (por defecto JWT_SECRET)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}

func statsCmd(cfg func() *config.Config, log func() *logger.Logger) *cobra.Command {
	var uid, from, to string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Imprime las estadísticas de ventas de un usuario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if uid == "" {
				return errors.New("--uid es requerido")
			}
			store, err := storage.Open(cmd.Context(), cfg(), log())
			if err != nil {
				return err
			}
			defer store.Close()

			uc := sales.NewSaleUseCase(
				docstore.New[entity.Sale](store, "sales"),
				docstore.New[entity.Product](store, "products"),
				store, sales.NopNotifier{}, log(),
			)
			stats, err := uc.Stats(cmd.Context(), uid, from, to)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "uid del usuario")
	cmd.Flags().StringVar(&from, "start-date", "", "fecha inicial YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "end-date", "", "fecha final YYYY-MM-DD (inclusive)")
	return cmd
}
