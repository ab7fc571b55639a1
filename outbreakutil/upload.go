/*
Copyright © 2020 the Outbreak authors.
This file is part of Outbreak.

Outbreak is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Outbreak is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Outbreak.  If not, see <http://www.gnu.org/licenses/>.
*/

package outbreakutil

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/go-cloud/blob"
)

// createOutput creates the output file at path, which can be a local file
// or a blob URL. For blobs, the data is uploaded when the returned writer is
// closed.
func createOutput(ctx context.Context, path string) (io.WriteCloser, error) {
	if !IsBlob(path) {
		w, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("outbreakutil: creating output file: %v", err)
		}
		return w, nil
	}
	bucketName, key, err := splitBlob(path)
	if err != nil {
		return nil, fmt.Errorf("outbreakutil: parsing url '%s' for upload: %v", path, err)
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("outbreakutil: opening bucket to upload file '%s': %v", path, err)
	}
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{})
	if err != nil {
		return nil, fmt.Errorf("outbreakutil: opening writer to upload file '%s': %v", path, err)
	}
	return w, nil
}

// writeOutput writes an output file using write.
func writeOutput(ctx context.Context, path string, write func(io.Writer) error) error {
	w, err := createOutput(ctx, path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return fmt.Errorf("outbreakutil: writing '%s': %v", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("outbreakutil: closing '%s': %v", path, err)
	}
	return nil
}
