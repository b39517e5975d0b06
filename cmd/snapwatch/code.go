package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/snapwatch"
)

const dateLayout = "2006-01-02"

// newCodeCmd prints the snapshot code that a watch without --target uses.
func newCodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Print the snapshot code for a date",
		Long: `Print the weekly snapshot code used as the default target.

The code is the last two digits of the year, "w", the zero-padded ISO week
number and "a". Without --date the current local date is used.

Example:
  snapwatch code
  snapwatch code --date 2024-01-31   # prints 24w05a`,
		Args: cobra.NoArgs,
		RunE: runCode,
	}

	cmd.Flags().String("date", "", "date to derive the code from (YYYY-MM-DD)")

	return cmd
}

func runCode(cmd *cobra.Command, args []string) error {
	day := time.Now()

	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", raw)
		}
		day = parsed
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), snapwatch.SnapshotCode(day.Local()))
	return nil
}
