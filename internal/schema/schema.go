// Package schema provides the principal schematics for all other packages. It
// defines the copy request/outcome data model and provides implementations for
// handling (Unix-based) operating system syscalls. The package serves as a
// foundational layer for filesystem interactions throughout the codebase.
package schema

// Request describes a single file copy to be carried out.
type Request struct {
	// SourcePath is the file to be copied; relative paths resolve against
	// the process working directory.
	SourcePath string

	// DestPath is the file to be created (or replaced).
	DestPath string

	// AllowOverwrite permits replacing an existing destination file. When
	// false, the destination is created with an atomic exclusive create.
	AllowOverwrite bool
}
