package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"attendsheet/internal/sheet"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		s := sheet.New(newClient(), sheet.Options{})
		if err := s.Load(cmd.Context()); err != nil {
			return err
		}

		w := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := s.ExportCSV(w); err != nil {
			return err
		}
		if output != "" {
			fmt.Printf("Exported %d records to %s\n", len(s.Rows()), output)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "write CSV to a file instead of stdout")
}
