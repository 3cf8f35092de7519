package main

import (
	"fmt"

	"peerperm/internal/domain/netperm"

	"github.com/spf13/cobra"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "List grantable permissions",
	Long:  `Print every permission label accepted in specs, with a short description.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, line := range netperm.Doc {
			fmt.Println(line)
		}
	},
}
