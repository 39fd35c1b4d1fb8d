package main

import (
	"fmt"
	"io"

	"github.com/alessio/shellescape"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/gammadia/reaper/retention"
)

// renderer turns engine events into the line-oriented console narrative.
type renderer struct {
	out    io.Writer
	dryRun bool
}

func (r *renderer) banner() {
	if r.dryRun {
		fmt.Fprintln(r.out, color.HiYellowString("Dry run: nothing will be removed"))
	}
}

func (r *renderer) render(event retention.Event) {
	switch e := event.(type) {
	case retention.EventDirectorySkipped:
		fmt.Fprintln(r.out, color.YellowString("Skipping %s, not old enough.", e.Path))
	case retention.EventDeleting:
		fmt.Fprintf(r.out, "Deleting: %s\n", e.Path)
	case retention.EventDirectoryKept:
		fmt.Fprintf(r.out, "%s is not empty or old enough.\n", e.Path)
	case retention.EventDeclined:
		fmt.Fprintln(r.out, color.YellowString("%s has not been removed. Run reaper again and answer Y if you want to remove it.", shellescape.Quote(e.Path)))
	case retention.EventFailed:
		fmt.Fprintln(r.out, color.HiRedString("Failed to remove %s: %v", e.Path, e.Err))
	case retention.EventScanError:
		fmt.Fprintln(r.out, color.HiRedString("Cannot read %s: %v", e.Path, e.Err))
	}
}

func (r *renderer) summary(report retention.Report) {
	verb := "Removed"
	if r.dryRun {
		verb = "Would remove"
	}

	line := fmt.Sprintf("%s %s and %s (%s)",
		verb,
		english.Plural(report.FilesRemoved, "file", ""),
		english.Plural(report.DirectoriesRemoved, "directory", "directories"),
		humanize.Bytes(uint64(report.BytesReclaimed)),
	)
	if report.Failed() {
		fmt.Fprintln(r.out, color.HiRedString("%s, %s", line, english.Plural(len(report.Failures), "failure", "")))
	} else {
		fmt.Fprintln(r.out, color.HiGreenString("%s", line))
	}
}
