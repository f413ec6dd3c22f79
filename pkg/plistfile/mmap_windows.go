//go:build windows

// pkg/plistfile/mmap_windows.go
package plistfile

import (
	"os"
	"reflect"
	"unsafe"

	"golang.org/x/sys/windows"

	"plist/pkg/node"
)

// windowsMapping bundles the Windows-specific handles behind MappedFile.file.
type windowsMapping struct {
	file      *os.File
	mapHandle windows.Handle
}

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

	mapHandle, err := windows.CreateFileMapping(
		windows.Handle(f.Fd()), nil, windows.PAGE_READONLY,
		uint32(size>>32), uint32(size&0xFFFFFFFF), nil,
	)
	if err != nil {
		f.Close()
		return nil, node.Wrap(node.KindIO, "CreateFileMapping "+path, err)
	}

	addr, err := windows.MapViewOfFile(mapHandle, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(mapHandle)
		f.Close()
		return nil, node.Wrap(node.KindIO, "MapViewOfFile "+path, err)
	}

	var data []byte
	header := (*reflect.SliceHeader)(unsafe.Pointer(&data))
	header.Data = addr
	header.Len = int(size)
	header.Cap = int(size)

	return &MappedFile{
		file: &windowsMapping{file: f, mapHandle: mapHandle},
		data: data,
		size: size,
	}, nil
}

// Close unmaps and closes the underlying file.
func (m *MappedFile) Close() error {
	mapping, ok := m.file.(*windowsMapping)
	if !ok || mapping == nil {
		return nil
	}
	var firstErr error
	if len(m.data) > 0 {
		if err := windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&m.data[0]))); err != nil && firstErr == nil {
			firstErr = node.Wrap(node.KindIO, "UnmapViewOfFile", err)
		}
		m.data = nil
	}
	if mapping.mapHandle != 0 {
		if err := windows.CloseHandle(mapping.mapHandle); err != nil && firstErr == nil {
			firstErr = node.Wrap(node.KindIO, "CloseHandle", err)
		}
	}
	if err := mapping.file.Close(); err != nil && firstErr == nil {
		firstErr = node.Wrap(node.KindIO, "close", err)
	}
	m.file = nil
	return firstErr
}
