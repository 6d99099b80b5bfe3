// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package archive

import (
	"archive/tar"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"gitlab.com/tozd/go/errors"
)

type compressor struct {
	ext  string
	wrap func(io.Writer) (io.WriteCloser, error)
}

var (
	gzipCompressor = compressor{
		ext: "gz",
		wrap: func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(w, gzip.BestCompression)
		},
	}
	bzip2Compressor = compressor{
		ext: "bz2",
		wrap: func(w io.Writer) (io.WriteCloser, error) {
			return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
		},
	}
)

// buildTar writes a GNU format tar of dir, symlinks kept as links, through c
func buildTar(dir string, c compressor) (out string, err error) {
	out = dir + ".tar." + c.ext
	f, err := os.Create(out)
	if err != nil {
		return "", errors.Errorf("creating %s: %w", out, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing %s: %w", out, cerr)
		}
	}()

	cw, err := c.wrap(f)
	if err != nil {
		return "", errors.Errorf("creating %s compressor: %w", c.ext, err)
	}
	tw := tar.NewWriter(cw)

	root := filepath.Dir(dir)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return addTarEntry(tw, root, path)
	})
	if err != nil {
		return "", errors.Errorf("archiving %s: %w", dir, err)
	}

	if err := tw.Close(); err != nil {
		return "", errors.Errorf("finishing tar %s: %w", out, err)
	}
	if err := cw.Close(); err != nil {
		return "", errors.Errorf("finishing %s: %w", out, err)
	}
	return out, nil
}

func addTarEntry(tw *tar.Writer, root, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}

	var link string
	if info.Mode()&os.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return err
		}
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	if info.IsDir() {
		hdr.Name += "/"
	}
	hdr.Format = tar.FormatGNU
	hdr.Uname, hdr.Gname = "", ""
	hdr.ModTime = info.ModTime().Truncate(time.Second)
	hdr.AccessTime, hdr.ChangeTime = time.Time{}, time.Time{}

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	return err
}
