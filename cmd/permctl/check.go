package main

import (
	"fmt"
	"strings"

	"peerperm/internal/domain/netperm"

	"github.com/spf13/cobra"
)

var checkBindCmd = &cobra.Command{
	Use:   "check-bind <spec>...",
	Short: "Validate address-bound permission specs",
	Long: `Parse one or more "perm[,perm...]@host:port" specs and print the
endpoint and resolved permissions of each. Exits non-zero on the first
spec that does not parse.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, spec := range args {
			bp, err := netperm.ParseBind(spec)
			if err != nil {
				errPrint(cmd.ErrOrStderr(), "invalid: %s\n", spec)
				return err
			}
			success("ok: %s\n", spec)
			fmt.Printf("    endpoint:    %s\n", bp.Addr)
			fmt.Printf("    permissions: %s\n", describeFlags(bp.Flags))
		}
		return nil
	},
}

var checkWhitelistCmd = &cobra.Command{
	Use:   "check-whitelist <spec>...",
	Short: "Validate subnet-bound permission specs",
	Long: `Parse one or more "perm[,perm...]@subnet" specs and print the
subnet, direction and resolved permissions of each. Exits non-zero on the
first spec that does not parse.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, spec := range args {
			sp, dir, err := netperm.ParseSubnet(spec)
			if err != nil {
				errPrint(cmd.ErrOrStderr(), "invalid: %s\n", spec)
				return err
			}
			success("ok: %s\n", spec)
			fmt.Printf("    subnet:      %s\n", sp.Subnet)
			fmt.Printf("    direction:   %s\n", dir)
			fmt.Printf("    permissions: %s\n", describeFlags(sp.Flags))
		}
		return nil
	},
}

func describeFlags(f netperm.Flags) string {
	labels := f.Strings()
	if len(labels) == 0 {
		return "(none)"
	}
	out := strings.Join(labels, ",")
	if f.Has(netperm.Implicit) {
		out += " (implicit)"
	}
	return out
}
