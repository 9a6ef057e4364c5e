package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/partage-labs/partage/internal/config"
	"github.com/partage-labs/partage/internal/logging"
	"github.com/partage-labs/partage/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		logging.New()
		s := server.New(config.New(), afero.NewOsFs())
		s.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
