// Copyright 2016 Thijs van Dijk. All rights reserved.
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

/*
	Package archive opens files by path name, where one of the directory
	names may actually be a zip archive. Engine resource packs are commonly
	shipped as zip files, so a scene can be addressed as
		media/level1.zip/scenes/level1.scene

	Usage:
		f, err := archive.Open("media/level1.zip/scenes/level1.scene")
		if err != nil {
			return err
		}
		defer f.Close()

	Unlike the cache in the old zipmap package, every call opens the archive
	afresh and Close releases it again.
*/
package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Open opens filename for reading. Regular files are opened directly;
// otherwise the first path element ending in .zip is opened as an archive
// and the remainder of the path is looked up inside it.
func Open(filename string) (io.ReadCloser, error) {
	fi, err := os.Stat(filename)
	if err == nil {
		if !fi.Mode().IsRegular() {
			return nil, errors.Errorf("'%s' is not a regular file", filename)
		}
		f, err := os.Open(filename)
		if err != nil {
			return nil, errors.Wrapf(err, "opening '%s'", filename)
		}
		return f, nil
	}

	elems := strings.Split(filepath.ToSlash(filename), "/")
	for i, elem := range elems {
		if !strings.HasSuffix(strings.ToLower(elem), ".zip") {
			continue
		}

		zipfile := strings.Join(elems[0:i+1], "/")
		if _, err := os.Stat(zipfile); err != nil {
			continue
		}

		localfile := strings.Join(elems[i+1:], "/")
		return openMember(zipfile, localfile)
	}

	return nil, errors.Wrapf(os.ErrNotExist, "file '%s' does not exist", filename)
}

func openMember(zipfile, localfile string) (io.ReadCloser, error) {
	read, err := zip.OpenReader(zipfile)
	if err != nil {
		return nil, errors.Wrapf(err, "opening archive '%s'", zipfile)
	}

	for _, zfp := range read.File {
		if zfp.Name != localfile {
			continue
		}
		f, err := zfp.Open()
		if err != nil {
			read.Close()
			return nil, errors.Wrapf(err, "opening '%s' in '%s'", localfile, zipfile)
		}
		return member{f, read}, nil
	}

	read.Close()
	return nil, errors.Wrapf(os.ErrNotExist, "file '%s' does not exist in '%s'", localfile, zipfile)
}

// A member closes both the file inside the archive and the archive itself
type member struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (m member) Close() error {
	err := m.ReadCloser.Close()
	if aerr := m.archive.Close(); err == nil {
		err = aerr
	}
	return err
}

// ReadFile reads the whole of filename, which may be inside a zip archive.
// The file is closed before ReadFile returns, also on failure.
func ReadFile(filename string) ([]byte, error) {
	f, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rv, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading '%s'", filename)
	}
	return rv, nil
}
