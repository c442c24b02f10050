package main

// Exit codes for non-interactive commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable config, unusable data directory)
	ExitDataError   = 3 // Data error (unreadable save file, unencodable contact)
	ExitDiverged    = 4 // Change applied in this run but not saved to disk
)
