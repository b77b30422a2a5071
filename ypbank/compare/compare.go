// Package compare checks whether two decoded transaction sequences hold the
// same records, position by position, and renders the outcome.
package compare

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/LerianStudio/lib-ypbank/ypbank/log"
	"github.com/LerianStudio/lib-ypbank/ypbank/transaction"
)

// Mismatch is a pair of records at the same index that differ.
type Mismatch struct {
	Index  int
	Left   transaction.Transaction
	Right  transaction.Transaction
	Fields []string
}

// Result is the outcome of comparing two sequences.
type Result struct {
	LeftCount  int
	RightCount int
	Mismatches []Mismatch
}

// CountMismatch reports whether the sequences have different lengths, in
// which case no pairwise comparison was made.
func (r Result) CountMismatch() bool {
	return r.LeftCount != r.RightCount
}

// Identical reports whether both sequences hold the same records in the same order.
func (r Result) Identical() bool {
	return !r.CountMismatch() && len(r.Mismatches) == 0
}

// Transactions compares left and right by position, not by id.
func Transactions(left, right []transaction.Transaction) Result {
	result := Result{LeftCount: len(left), RightCount: len(right)}

	if result.CountMismatch() {
		return result
	}

	for i := range left {
		if fields := left[i].Diff(right[i]); len(fields) > 0 {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Index:  i,
				Left:   left[i],
				Right:  right[i],
				Fields: fields,
			})
		}
	}

	return result
}

// Labels name the two compared sources in a report.
type Labels struct {
	Left  string
	Right string
}

// WriteReport renders result to w. It logs a summary through logger.
func WriteReport(ctx context.Context, logger log.Logger, w io.Writer, labels Labels, result Result) error {
	if logger == nil {
		logger = log.NewNop()
	}

	var b strings.Builder

	switch {
	case result.CountMismatch():
		fmt.Fprintf(&b, "The number of transactions differs: %d in '%s' vs %d in '%s'.\n",
			result.LeftCount, labels.Left, result.RightCount, labels.Right)

		logger.Log(ctx, log.LevelWarn, "transaction count mismatch",
			log.Int("left_count", result.LeftCount),
			log.Int("right_count", result.RightCount),
		)
	case len(result.Mismatches) > 0:
		for _, m := range result.Mismatches {
			fmt.Fprintf(&b, "Transaction at index %d does not match (TX_ID: %d), differing fields: %s.\n",
				m.Index, m.Left.ID, strings.Join(m.Fields, ", "))
			fmt.Fprintf(&b, "  %s: %s\n", labels.Left, m.Left)
			fmt.Fprintf(&b, "  %s: %s\n", labels.Right, m.Right)
		}

		logger.Log(ctx, log.LevelWarn, "transactions differ",
			log.Int("count", result.LeftCount),
			log.Int("mismatches", len(result.Mismatches)),
		)
	default:
		fmt.Fprintf(&b, "The transaction records in '%s' and '%s' are identical.\n", labels.Left, labels.Right)

		logger.Log(ctx, log.LevelInfo, "transactions identical", log.Int("count", result.LeftCount))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write comparison report: %w", err)
	}

	return nil
}
