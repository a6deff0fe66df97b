package cmd

import (
	"soundlink/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the SoundLink HTTP server",
	Long:  `Starts the SoundLink API server, serving the catalog, playlists, search and media routes.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
