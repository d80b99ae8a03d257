package schema

import "golang.org/x/sys/unix"

// Metadata holds the source file attributes that are carried over to the
// destination when preservation is enabled.
type Metadata struct {
	Perms      uint32
	UID        uint32
	GID        uint32
	AccessedAt unix.Timespec
	ModifiedAt unix.Timespec
	Size       int64
	IsRegular  bool
}
