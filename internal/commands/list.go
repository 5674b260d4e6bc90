package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"attendsheet/internal/attendance"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List attendance records",
	RunE: func(cmd *cobra.Command, args []string) error {
		order := attendance.SortDesc
		if asc, _ := cmd.Flags().GetBool("asc"); asc {
			order = attendance.SortAsc
		}

		records, err := newClient().ListRecords(cmd.Context(), order)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No records yet. Use 'attendsheet add' to create one.")
			return nil
		}

		fmt.Printf("%-6s %-24s %-16s %-12s %-7s %-7s %s\n", "ID", "NAME", "ROLE", "DATE", "IN", "OUT", "HOURS")
		fmt.Println(strings.Repeat("-", 84))
		for _, rec := range records {
			name := rec.StudentName
			if len(name) > 22 {
				name = name[:19] + "..."
			}
			role := rec.Role
			if len(role) > 14 {
				role = role[:11] + "..."
			}
			fmt.Printf("%-6d %-24s %-16s %-12s %-7s %-7s %s\n",
				rec.ID, name, role, rec.Date, rec.TimeIn, rec.TimeOut, rec.TotalHours)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("asc", false, "oldest records first")
}
