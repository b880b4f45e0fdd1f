// Command api runs the store rating HTTP API.
//
// @title                       Store Rating API
// @version                     1.0
// @description                 Role-based store rating service.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the server when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:          "api",
	Short:        "Store rating API server",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
