// pkg/plistfile/file.go
package plistfile

import (
	"io"
	"os"

	"plist/pkg/node"
)

// mmapThreshold is the file size above which ReadAll prefers a memory
// mapping over a full os.ReadFile copy. Below it, the copy overhead is
// smaller than a mapping's setup cost.
const mmapThreshold = 1 << 20 // 1 MiB

// ReadAll returns path's contents as a byte slice plus an io.Closer that
// must be called once the caller is done with the slice (a no-op for the
// small-file os.ReadFile path, an munmap+close for the mmap path). path
// of "-" reads stdin fully into memory instead (no mapping is possible
// on a stream).
func ReadAll(path string) ([]byte, io.Closer, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, node.Wrap(node.KindIO, "read stdin", err)
		}
		return data, io.NopCloser(nil), nil
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, node.Wrap(node.KindIO, "stat "+path, err)
	}
	if stat.Size() < mmapThreshold {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, node.Wrap(node.KindIO, "read "+path, err)
		}
		return data, io.NopCloser(nil), nil
	}

	mapped, err := OpenMmap(path)
	if err != nil {
		return nil, nil, err
	}
	return mapped.Bytes(), mapped, nil
}

// WriteAll writes data to path, or to stdout when path is "-".
func WriteAll(path string, data []byte) error {
	if path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return node.Wrap(node.KindIO, "write stdout", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return node.Wrap(node.KindIO, "write "+path, err)
	}
	return nil
}
