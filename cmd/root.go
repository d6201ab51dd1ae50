package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recbase/recmap/cmd/perf"
	"github.com/recbase/recmap/cmd/util"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "recmap",
		Short: "compact associative container",
		Long: fmt.Sprintf(`recmap (v%s)

A compact open-addressed key-value container library written in Go,
with aliasing views, sealing and visitor-driven traversal.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of recmap",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("recmap v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
