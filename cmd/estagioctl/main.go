// Command estagioctl is the admin CLI of the internship hours hub. It
// talks to a running server over its REST API: seeding holidays,
// exporting and importing the work log as CSV, and downloading the
// midterm report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "estagioctl",
	Short: "Admin CLI for the internship hours hub",
	Long: `estagioctl manages an estagio-hours-hub server: holiday
calendar seeding, CSV export/import of the work log, and report
downloads. The server address comes from ~/.estagioctl.yaml or the
--server flag.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().String("server", "", "server base URL (overrides config file)")

	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(dashboardCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
