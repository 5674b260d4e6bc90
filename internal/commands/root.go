package commands

import (
	"github.com/spf13/cobra"

	"attendsheet/internal/apiclient"
	"attendsheet/internal/config"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "attendsheet",
	Short: "Attendance sheet from the terminal",
	Long: `attendsheet talks to a running attendance service and lets you list
records, add new ones, and export the sheet as CSV without opening the browser app.`,
}

// newClient builds an API client for the configured server.
func newClient() *apiclient.Client {
	return apiclient.New(serverURL)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", config.Load().ServerURL, "base URL of the attendance service")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(exportCmd)
}
