package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Initialize colored output
var (
	success  = color.New(color.FgGreen).PrintfFunc()
	errPrint = color.New(color.FgRed).FprintfFunc()
)

var rootCmd = &cobra.Command{
	Use:   "permctl",
	Short: "Peer permission spec tool",
	Long: `permctl validates peer permission specifications and mints admin
tokens for the peerperm API.

Permission specs take the form "perm[,perm...]@target", where the target
is either a host:port listening endpoint or a subnet with an optional
in:/out: direction marker.`,
}

func init() {
	rootCmd.AddCommand(checkBindCmd)
	rootCmd.AddCommand(checkWhitelistCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
