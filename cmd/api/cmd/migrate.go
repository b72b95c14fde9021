// AngelaMos | 2026
// migrate.go

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/config"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

var (
	migrateStore string
	migrateSteps int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or inspect schema migrations",
	Long: `Run schema migrations against the main store, the transactions
store, or both (the default).

Examples:
  api migrate up
  api migrate down --store transactions --steps 1
  api migrate version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachStore(func(t migrationTarget) error {
			if err := core.MigrateUp(t.url, t.path); err != nil {
				return err
			}
			cmd.Printf("%s: migrations applied\n", t.name)
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachStore(func(t migrationTarget) error {
			if err := core.MigrateDown(t.url, t.path, migrateSteps); err != nil {
				return err
			}
			cmd.Printf("%s: rolled back %d step(s)\n", t.name, migrateSteps)
			return nil
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachStore(func(t migrationTarget) error {
			version, dirty, err := core.MigrationVersion(t.url, t.path)
			if err != nil {
				return err
			}
			cmd.Printf("%s: version %d (dirty=%t)\n", t.name, version, dirty)
			return nil
		})
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrateStore, "store", "all",
		"store to migrate (main, transactions, all)")
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1,
		"number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}

type migrationTarget struct {
	name string
	url  string
	path string
}

func migrationTargets(cfg *config.Config, store string) ([]migrationTarget, error) {
	mainTarget := migrationTarget{core.StoreMain, cfg.Database.URL, cfg.Migrations.MainPath}
	txns := migrationTarget{
		core.StoreTransactions,
		cfg.TransactionsDatabase.URL,
		cfg.Migrations.TransactionsPath,
	}

	switch store {
	case "all", "":
		return []migrationTarget{mainTarget, txns}, nil
	case core.StoreMain:
		return []migrationTarget{mainTarget}, nil
	case core.StoreTransactions:
		return []migrationTarget{txns}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", store)
	}
}

func forEachStore(fn func(migrationTarget) error) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	targets, err := migrationTargets(cfg, migrateStore)
	if err != nil {
		return err
	}

	for _, t := range targets {
		if err := fn(t); err != nil {
			return fmt.Errorf("%s store: %w", t.name, err)
		}
	}
	return nil
}
