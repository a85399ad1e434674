package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "every",
	Short: "Run and inspect calendar-aligned recurring schedules",
	Long: `every runs recurring schedules such as "every day at 5:30" or
"every 2 weeks on Monday at midnight", and computes their fire times.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd, nextCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
