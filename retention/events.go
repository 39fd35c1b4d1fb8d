package retention

// Event is emitted by the engine and the confirmation gate for every observable decision.
type Event interface{}

// Directories

// EventDirectorySkipped reports a directory holding at least one file that is too recent.
type EventDirectorySkipped struct {
	Path string
}

// EventDirectoryKept reports a directory left in place after its files were handled.
type EventDirectoryKept struct {
	Path string
}

type EventScanError struct {
	Path string
	Err  error
}

// Removals

type EventDeleting struct {
	Path      string
	Directory bool
}

type EventDeclined struct {
	Path string
}

type EventFailed struct {
	Path string
	Err  error
}
