package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var promosCmd = &cobra.Command{
	Use:   "promos",
	Short: "List the configured promotion codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := cfg.PromotionTable()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tDISCOUNT")
		for _, p := range table.Promotions() {
			fmt.Fprintf(w, "%s\t%s\n", p.Code, p.Percent())
		}
		return w.Flush()
	},
}
