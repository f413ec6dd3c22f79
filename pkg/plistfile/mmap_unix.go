//go:build unix || darwin || linux || freebsd || openbsd || netbsd

// pkg/plistfile/mmap_unix.go
package plistfile

import (
	"os"
	"syscall"

	"plist/pkg/node"
)

// OpenMmap memory-maps path read-only.
func OpenMmap(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, node.Wrap(node.KindIO, "open "+path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, node.Wrap(node.KindIO, "stat "+path, err)
	}
	size := stat.Size()
	if size == 0 {
		f.Close()
		return nil, node.NewError(node.KindIO, "cannot mmap empty file "+path)
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		f.Close()
		return nil, node.Wrap(node.KindIO, "mmap "+path, err)
	}

	return &MappedFile{file: f, data: data, size: size}, nil
}

// Close unmaps and closes the underlying file.
func (m *MappedFile) Close() error {
	var firstErr error
	if m.data != nil {
		if err := syscall.Munmap(m.data); err != nil && firstErr == nil {
			firstErr = node.Wrap(node.KindIO, "munmap", err)
		}
		m.data = nil
	}
	if m.file != nil {
		f := m.file.(*os.File)
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = node.Wrap(node.KindIO, "close", err)
		}
		m.file = nil
	}
	return firstErr
}
