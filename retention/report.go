package retention

type Failure struct {
	Path string
	Err  error
}

// Report summarizes what a run removed, or would have removed under dry-run.
type Report struct {
	Directories        int
	FilesRemoved       int
	DirectoriesRemoved int
	BytesReclaimed     int64
	Skipped            int
	Kept               int
	Declined           int
	Failures           []Failure
}

func (r Report) Removed() int {
	return r.FilesRemoved + r.DirectoriesRemoved
}

func (r Report) Failed() bool {
	return len(r.Failures) > 0
}
