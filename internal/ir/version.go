package ir

// Version constants for the document schema and the tool.
const (
	// SchemaVersion is the document schema version stored with persisted
	// definitions.
	SchemaVersion = "1"

	// Version is the Lexaard tool version.
	Version = "0.1.0"
)
