// pkg/plistfile/mmap.go
// Package plistfile provides optional memory-mapped file loading for the
// CLI driver (cmd/plutil): an alternative to os.ReadFile that avoids
// copying large source files into a freshly allocated []byte. The core
// library (pkg/plist and the codec packages) remains file-I/O-free and
// operates on the resulting byte slice exactly as it would any other
// in-memory buffer — spec.md §1's one-shot, non-streaming contract is
// unaffected by how the slice was produced.
//
// Adapted from pkg/pager/mmap_unix.go and mmap_windows.go in the teacher
// repo: same MappedFile{file, data, size} shape and per-platform
// open/close lifecycle, narrowed to read-only mapping (this package has
// no paged database file to grow in place).
package plistfile

// MappedFile is a read-only memory mapping of a file on disk.
// Platform-specific implementations live in mmap_unix.go and
// mmap_windows.go.
type MappedFile struct {
	file interface{} // *os.File on Unix, a windows handle bundle on Windows
	data []byte
	size int64
}

// Size returns the mapped file's size in bytes.
func (m *MappedFile) Size() int64 { return m.size }

// Bytes returns the mapped region as a byte slice, valid until Close.
func (m *MappedFile) Bytes() []byte { return m.data }
