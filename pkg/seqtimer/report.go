package seqtimer

import (
	"fmt"
	"io"
	"math/bits"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Row is one line of a report.
type Row struct {
	Name     string
	Duration time.Duration
	Percent  uint64
}

// Report is the sorted breakdown of finished events.
type Report struct {
	// NameWidth is the widest name of all started events, in terminal cells.
	// For non-ASCII names this is not the byte or rune count.
	NameWidth int
	// DurationWidth is the digit count of the longest duration in nanoseconds.
	DurationWidth int
	Total         time.Duration
	// Rows are ordered by duration, longest first. Equal durations keep their start order.
	Rows []Row

	Unfinished    string
	HasUnfinished bool
}

// NewReport lays out events. open names the unfinished event when isOpen is set;
// it takes part in the name width but gets no row.
func NewReport(events []Event, open string, isOpen bool) Report {
	r := Report{Unfinished: open, HasUnfinished: isOpen}

	var longest time.Duration
	for _, e := range events {
		r.NameWidth = max(r.NameWidth, runewidth.StringWidth(e.Name))
		longest = max(longest, e.Duration)
		r.Total += e.Duration
	}
	if isOpen {
		r.NameWidth = max(r.NameWidth, runewidth.StringWidth(open))
	}
	if len(events) > 0 {
		r.DurationWidth = len(strconv.FormatInt(longest.Nanoseconds(), 10))
	}

	r.Rows = make([]Row, len(events))
	for i, e := range events {
		r.Rows[i] = Row{
			Name:     e.Name,
			Duration: e.Duration,
			Percent:  percentOf(e.Duration, r.Total),
		}
	}
	slices.SortStableFunc(r.Rows, func(a, b Row) int {
		switch {
		case a.Duration > b.Duration:
			return -1
		case a.Duration < b.Duration:
			return 1
		}
		return 0
	})

	return r
}

// WriteTo writes the report as text.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, row := range r.Rows {
		n, err := fmt.Fprintf(w, "%s | %*d ns | %3d%%\n",
			runewidth.FillLeft(row.Name, r.NameWidth), r.DurationWidth, row.Duration.Nanoseconds(), row.Percent)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	if r.HasUnfinished {
		n, err := io.WriteString(w, UnfinishedWarning(r.Unfinished))
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// String returns the report as text.
func (r Report) String() string {
	var sb strings.Builder
	_, _ = r.WriteTo(&sb)
	return sb.String()
}

// UnfinishedWarning returns the report line for an event that is still running.
func UnfinishedWarning(name string) string {
	return "WARNING: timer event `" + name + "` has not been finished properly, run finish()\n"
}

// percentOf returns floor(d*100/total), or 0 when total is zero.
func percentOf(d, total time.Duration) uint64 {
	if d <= 0 || total <= 0 {
		return 0
	}
	if d >= total {
		return 100
	}
	hi, lo := bits.Mul64(uint64(d), 100)
	q, _ := bits.Div64(hi, lo, uint64(total))
	return q
}
