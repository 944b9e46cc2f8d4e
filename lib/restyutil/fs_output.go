package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Output receives the dumped pages, id is a file name.
type Output interface {
	Write(id string, contents string)
}

// FilesystemOutput writes every dump as a file in a directory, which is
// created on the first write.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) FilesystemOutput {
	return FilesystemOutput{directory: dir}
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.MkdirAll(o.directory, 0777)
	if err != nil {
		slog.Warn("failed to create dump directory", "dir", o.directory, "err", err.Error())
		return
	}
	err = os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write dump file", "id", id, "err", err.Error())
	}
}
