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
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"gitlab.com/tozd/go/errors"
)

// buildZip adds the regular files under dir, following symlinks, with names
// rooted at the base name of dir
func buildZip(dir string) (out string, err error) {
	out = dir + ".zip"
	f, err := os.Create(out)
	if err != nil {
		return "", errors.Errorf("creating %s: %w", out, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing %s: %w", out, cerr)
		}
	}()

	zw := zip.NewWriter(f)
	if err := addZipDir(zw, filepath.Dir(dir), dir); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", errors.Errorf("finishing %s: %w", out, err)
	}
	return out, nil
}

func addZipDir(zw *zip.Writer, root, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		info, err := os.Stat(full)
		if err != nil {
			return errors.Errorf("stat %s: %w", full, err)
		}
		if info.IsDir() {
			if err := addZipDir(zw, root, full); err != nil {
				return err
			}
			continue
		}
		if err := addZipFile(zw, root, full, info); err != nil {
			return err
		}
	}
	return nil
}

func addZipFile(zw *zip.Writer, root, path string, info os.FileInfo) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return errors.Errorf("archive name of %s: %w", path, err)
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Errorf("zip header for %s: %w", path, err)
	}
	hdr.Name = filepath.ToSlash(rel)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return errors.Errorf("adding %s: %w", rel, err)
	}

	src, err := os.Open(path)
	if err != nil {
		return errors.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return errors.Errorf("writing %s: %w", rel, err)
	}
	return nil
}
