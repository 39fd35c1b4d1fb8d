package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gammadia/reaper/retention"
	"github.com/stretchr/testify/assert"
)

func TestRenderer_Events(t *testing.T) {
	var out bytes.Buffer
	r := &renderer{out: &out}

	r.render(retention.EventDirectorySkipped{Path: "/data/a"})
	r.render(retention.EventDeleting{Path: "/data/b/file.log"})
	r.render(retention.EventDeleting{Path: "/data/b", Directory: true})
	r.render(retention.EventDirectoryKept{Path: "/data"})
	r.render(retention.EventDeclined{Path: "/data/my file"})
	r.render(retention.EventFailed{Path: "/data/c", Err: errors.New("permission denied")})
	r.render(retention.EventScanError{Path: "/data/d", Err: errors.New("permission denied")})

	assert.Equal(t,
		"Skipping /data/a, not old enough.\n"+
			"Deleting: /data/b/file.log\n"+
			"Deleting: /data/b\n"+
			"/data is not empty or old enough.\n"+
			"'/data/my file' has not been removed. Run reaper again and answer Y if you want to remove it.\n"+
			"Failed to remove /data/c: permission denied\n"+
			"Cannot read /data/d: permission denied\n",
		out.String(),
	)
}

func TestRenderer_Summary(t *testing.T) {
	var out bytes.Buffer
	(&renderer{out: &out}).summary(retention.Report{FilesRemoved: 3, DirectoriesRemoved: 1, BytesReclaimed: 2048})
	assert.Equal(t, "Removed 3 files and 1 directory (2.0 kB)\n", out.String())
}

func TestRenderer_SummaryDryRunWithFailures(t *testing.T) {
	var out bytes.Buffer
	(&renderer{out: &out, dryRun: true}).summary(retention.Report{
		FilesRemoved: 1,
		Failures:     []retention.Failure{{Path: "/data/c", Err: errors.New("boom")}},
	})
	assert.Equal(t, "Would remove 1 file and 0 directories (0 B), 1 failure\n", out.String())
}
