/*
 * MIT License
 *
 * Copyright (c) 2026 The RunMeter Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Uploader stores the produced report files under a named artifact. Only
// the file paths and a retention hint cross this boundary; remote storage
// backends live behind this interface, outside this module.
type Uploader interface {
	Upload(name string, paths []string, retentionDays int) error
}

// DirUploader bundles artifact files into a local directory tree,
// `<root>/<name>/`. It is the default Uploader when no external backend is
// wired in.
type DirUploader struct {
	Root string
}

// Upload copies each file into the artifact directory. The retention hint
// is accepted for interface compatibility; local bundles are cleaned up by
// whoever owns the scratch directory.
func (u DirUploader) Upload(name string, paths []string, retentionDays int) error {
	dir := filepath.Join(u.Root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := copyFile(p, filepath.Join(dir, filepath.Base(p))); err != nil {
			return fmt.Errorf("failed to bundle %s: %w", p, err)
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Close()
}
