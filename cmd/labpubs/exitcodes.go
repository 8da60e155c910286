package main

// Exit codes
const (
	ExitSuccess     = 0 // Success, including a fetch that kept the previous snapshot
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing author id, bad labpubs.yml)
	ExitDataError   = 3 // Data error (malformed snapshot, validation failure)
)
