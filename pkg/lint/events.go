package lint

type (
	// Sent to update the total file count.
	EventSetFileTotal int

	// Sent when a file's lint run has started.
	EventLintingFile string

	// Sent when a file has been linted, or when reading it failed.
	EventLintedFile struct {
		Err    error
		File   string
		Issues []Issue
	}

	// Sent when the whole run is finished.
	EventDone struct {
		Err error
	}
)
