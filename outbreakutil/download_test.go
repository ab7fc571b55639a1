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
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLog() logrus.FieldLogger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

func TestFetchLocal(t *testing.T) {
	b, err := fetch(context.Background(), "testdata/catalog.toml", testLog())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte("Lombardy")) {
		t.Errorf("wrong contents: %s", b)
	}
	if _, err := fetch(context.Background(), "/blah/test/", testLog()); err == nil {
		t.Error("a missing file should be an error")
	}
}

func TestFetchHTTP(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		switch {
		case r.URL.Path == "/missing.csv":
			http.NotFound(w, r)
		case n == 1:
			http.Error(w, "try again", http.StatusServiceUnavailable)
		default:
			http.ServeFile(w, r, filepath.Join("testdata", filepath.Base(r.URL.Path)))
		}
	}))
	defer srv.Close()

	b, err := fetch(context.Background(), srv.URL+"/locations.csv", testLog())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("countriesAndTerritories")) {
		t.Errorf("wrong contents: %s", b)
	}
	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("%d requests, want 2", n)
	}

	if _, err := fetch(context.Background(), srv.URL+"/missing.csv", testLog()); err == nil {
		t.Error("a missing file should be an error")
	}
	if n := atomic.LoadInt32(&requests); n != 3 {
		t.Errorf("a client error was retried: %d requests, want 3", n)
	}
}

func TestSplitBlob(t *testing.T) {
	var tests = []struct {
		path, bucket, key string
	}{
		{path: "gs://bucket/dir/file.csv", bucket: "gs://bucket", key: "dir/file.csv"},
		{path: "s3://bucket/file.csv", bucket: "s3://bucket", key: "file.csv"},
		{path: "file:///tmp/dir/file.csv", bucket: "file:///tmp/dir", key: "file.csv"},
		{path: "file://testdata/file.csv", bucket: "file://testdata", key: "file.csv"},
	}
	for _, test := range tests {
		bucket, key, err := splitBlob(test.path)
		if err != nil {
			t.Fatal(err)
		}
		if bucket != test.bucket || key != test.key {
			t.Errorf("%s: (%s, %s), want (%s, %s)", test.path, bucket, key, test.bucket, test.key)
		}
	}
}

func TestBlobRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "outbreak")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	ctx := context.Background()
	path := "file://" + filepath.ToSlash(dir) + "/catalog.toml"
	if !IsBlob(path) {
		t.Fatalf("%s should be a blob", path)
	}

	want, err := ioutil.ReadFile("testdata/catalog.toml")
	if err != nil {
		t.Fatal(err)
	}
	err = writeOutput(ctx, path, func(w io.Writer) error {
		_, err := w.Write(want)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	have, err := fetch(ctx, path, testLog())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(have, want) {
		t.Errorf("round trip changed the contents: %s", have)
	}
}
