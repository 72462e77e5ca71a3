// Package tableview renders timer reports as bordered tables.
package tableview

import (
	"fmt"
	"io"
	"strconv"

	"github.com/MeKo-Tech/seqtimer/pkg/seqtimer"
	"github.com/olekukonko/tablewriter"
)

// Render writes r as a table, most expensive event first.
func Render(w io.Writer, r seqtimer.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header("Event", "Duration", "ns", "Share")

	for _, row := range r.Rows {
		if err := table.Append(
			row.Name,
			row.Duration.String(),
			strconv.FormatInt(row.Duration.Nanoseconds(), 10),
			fmt.Sprintf("%d%%", row.Percent),
		); err != nil {
			return fmt.Errorf("failed to add row %q: %w", row.Name, err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if r.HasUnfinished {
		_, err := io.WriteString(w, seqtimer.UnfinishedWarning(r.Unfinished))
		return err
	}
	return nil
}
