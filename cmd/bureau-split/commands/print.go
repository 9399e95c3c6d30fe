// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/bureau-split/lib/bytesize"
	"github.com/bureau-foundation/bureau-split/lib/splitter"
)

// summaryOrder is the order statuses appear in the closing summary line.
var summaryOrder = []splitter.Status{
	splitter.StatusSplit,
	splitter.StatusResplit,
	splitter.StatusSkipped,
	splitter.StatusMerged,
	splitter.StatusReconstructed,
	splitter.StatusAlreadyPresent,
	splitter.StatusCleaned,
	splitter.StatusFailed,
}

// printReport writes one line per outcome followed by a summary of
// the counts.
func printReport(w io.Writer, report *splitter.Report) {
	if len(report.Outcomes) == 0 {
		fmt.Fprintf(w, "%s: nothing to do\n", report.Operation)
		return
	}

	writer := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	for _, outcome := range report.Outcomes {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", outcome.Status, outcome.Path, outcomeDetail(outcome))
	}
	writer.Flush()

	var counts []string
	for _, status := range summaryOrder {
		if count := report.Count(status); count > 0 {
			counts = append(counts, fmt.Sprintf("%d %s", count, status))
		}
	}
	fmt.Fprintf(w, "%s: %s\n", report.Operation, strings.Join(counts, ", "))
}

func outcomeDetail(outcome splitter.Outcome) string {
	if outcome.Status == splitter.StatusFailed {
		return outcome.Error
	}
	var parts []string
	if outcome.SplitCount > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", outcome.SplitCount, plural(outcome.SplitCount, "chunk", "chunks")))
	}
	if outcome.Size > 0 {
		parts = append(parts, bytesize.Size(outcome.Size).Humanize())
	}
	return strings.Join(parts, ", ")
}

func plural(count int, singular, multiple string) string {
	if count == 1 {
		return singular
	}
	return multiple
}
