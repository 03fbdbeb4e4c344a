package main

import (
	"fmt"
	"io"
	"strconv"

	"skelreview/internal/dataset"
	"skelreview/internal/review"
)

func renderReviewReport(out io.Writer, summary review.Summary, videoList, skeletonList string) {
	fmt.Fprintf(out, "Session %s (%s, mode %s)\n", summary.SessionID, summary.Action, summary.Mode)
	if summary.Cancelled {
		fmt.Fprintln(out, "Review interrupted")
	}
	rows := [][]string{
		{"Clips", strconv.Itoa(summary.Clips)},
		{"Visited", strconv.Itoa(summary.Visited)},
		{"Frames shown", strconv.Itoa(summary.Frames)},
		{"Excluded", strconv.Itoa(summary.Excluded)},
		{"Included", strconv.Itoa(summary.Included)},
		{"Skipped", strconv.Itoa(len(summary.Skipped))},
		{"Overlay discrepancies", strconv.Itoa(summary.Discrepancies)},
	}
	fmt.Fprintln(out, renderMetricTable("Count", rows))

	if len(summary.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped clips:")
		for _, s := range summary.Skipped {
			fmt.Fprintf(out, "  - %s: %s\n", dataset.Stem(s.Clip.Video), s.Reason)
		}
	}

	if !summary.Persisted {
		fmt.Fprintln(out, "Exception ledger not saved")
		return
	}
	if summary.Ledger == nil || summary.Ledger.Empty() {
		fmt.Fprintf(out, "Exception ledger for %s is empty\n", summary.Action)
		return
	}
	writeLedgerLists(out, videoList, summary.Ledger.Videos(), skeletonList, summary.Ledger.Skeletons())
}

func writeLedgerLists(out io.Writer, videoList string, videos []string, skeletonList string, skeletons []string) {
	fmt.Fprintf(out, "Excluded videos (%d) in %s:\n", len(videos), videoList)
	for _, path := range videos {
		fmt.Fprintf(out, "  %s\n", path)
	}
	fmt.Fprintf(out, "Excluded skeleton files (%d) in %s:\n", len(skeletons), skeletonList)
	for _, path := range skeletons {
		fmt.Fprintf(out, "  %s\n", path)
	}
}
