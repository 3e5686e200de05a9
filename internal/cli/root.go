// Package cli is the terminal client: it plays one board on stdin and
// stdout using the same commands as the websocket endpoint.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vancomm/minefield/internal/config"
)

type Config struct {
	Rows         int
	Cols         int
	MinesPercent float64
	Seed         uint64
	Verbose      bool
}

func DefaultConfig() *Config {
	board := config.DefaultBoard()
	return &Config{
		Rows:         board.Rows,
		Cols:         board.Cols,
		MinesPercent: board.MinesPercent,
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "mines",
		Short: "Play minesweeper in the terminal",
		Long: `mines plays a single minesweeper board in the terminal.

Commands, one per line:
  o ROW COL   uncover a tile (chord if already open)
  f ROW COL   cycle the flag on a tile
  g           show the board
  n           new board
  r           give up
  q           quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Play(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, cmd.Flags().Changed("seed"))
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().IntVarP(&cfg.Rows, "rows", "r", cfg.Rows, "Number of rows")
	rootCmd.Flags().IntVarP(&cfg.Cols, "cols", "c", cfg.Cols, "Number of columns")
	rootCmd.Flags().Float64VarP(&cfg.MinesPercent, "mines-percent", "p", cfg.MinesPercent, "Percentage of tiles holding a mine")
	rootCmd.Flags().Uint64VarP(&cfg.Seed, "seed", "s", cfg.Seed, "Seed for a reproducible board")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log engine events to stderr")

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
