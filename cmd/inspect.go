package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsvkit/tsvjoin/internal/table"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Report the shape of a tab-delimited file",
	Long:  `Reads a tab-delimited file and reports its row count and the 1-based positions of the first row's fields, to help pick --first/--second/--keep values.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening file: %w", err)
		}
		defer f.Close()

		var first table.Row
		rows := 0
		sc := table.NewScanner(f)
		for sc.Scan() {
			if rows == 0 {
				first = table.Split(sc.Text())
			}
			rows++
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		fmt.Printf("%s: %d rows\n", args[0], rows)
		if rows > 0 {
			fmt.Printf("first row has %d columns:\n", len(first))
			for i, fld := range first {
				fmt.Printf("  %d\t%s\n", i+1, fld)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
