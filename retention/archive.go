package retention

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

// Archive collects the content of removed files in a zstd compressed tarball.
type Archive struct {
	fs   afero.Fs
	file afero.File
	zw   *zstd.Encoder
	tw   *tar.Writer
}

// OpenArchive creates (or truncates) the tarball at path.
func OpenArchive(fsys afero.Fs, path string) (*Archive, error) {
	file, err := fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	zw, err := zstd.NewWriter(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	return &Archive{fs: fsys, file: file, zw: zw, tw: tar.NewWriter(zw)}, nil
}

// Add appends the regular file at path. Other kinds of entries are ignored.
func (a *Archive) Add(path string) (err error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = strings.TrimLeft(path, "/")

	fd, err := a.fs.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	if err = a.tw.WriteHeader(header); err != nil {
		return err
	}
	_, err = io.Copy(a.tw, fd)
	return err
}

// Wrap returns a Deleter archiving files before handing them over to next.
func (a *Archive) Wrap(next Deleter) Deleter {
	return &archivingDeleter{archive: a, next: next}
}

func (a *Archive) Close() error {
	if err := a.tw.Close(); err != nil {
		_ = a.zw.Close()
		_ = a.file.Close()
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := a.zw.Close(); err != nil {
		_ = a.file.Close()
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return a.file.Close()
}

type archivingDeleter struct {
	archive *Archive
	next    Deleter
}

// archivingDeleter implements Deleter
var _ Deleter = (*archivingDeleter)(nil)

func (d *archivingDeleter) Remove(path string) error {
	if err := d.archive.Add(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return d.next.Remove(path)
}
