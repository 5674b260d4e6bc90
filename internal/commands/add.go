package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"attendsheet/internal/attendance"
	"attendsheet/internal/sheet"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an attendance record",
	Long:  "Add a record; total hours are derived from --in/--out the same way the browser grid derives them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")
		date, _ := cmd.Flags().GetString("date")
		timeIn, _ := cmd.Flags().GetString("in")
		timeOut, _ := cmd.Flags().GetString("out")
		lunch, _ := cmd.Flags().GetDuration("lunch")

		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		fields := attendance.Fields{
			StudentName: name,
			Role:        role,
			Date:        date,
			TimeIn:      timeIn,
			TimeOut:     timeOut,
			TotalHours:  sheet.ComputeHours(timeIn, timeOut, lunch),
		}
		id, _, err := newClient().CreateRecord(cmd.Context(), fields)
		if err != nil {
			return err
		}
		fmt.Printf("Created record %d (%s hours)\n", id, fields.TotalHours)
		return nil
	},
}

func init() {
	addCmd.Flags().String("name", "", "student name")
	addCmd.Flags().String("role", "", "role")
	addCmd.Flags().String("date", "", "date (YYYY-MM-DD, defaults to today)")
	addCmd.Flags().String("in", "", "time in (HH:MM)")
	addCmd.Flags().String("out", "", "time out (HH:MM)")
	addCmd.Flags().Duration("lunch", 0, "lunch break to deduct, e.g. 1h")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("role")
}
