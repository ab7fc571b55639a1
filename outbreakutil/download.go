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
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cenkalti/backoff"
	"github.com/google/go-cloud/blob"
	"github.com/google/go-cloud/blob/fileblob"
	"github.com/google/go-cloud/blob/gcsblob"
	"github.com/google/go-cloud/blob/s3blob"
	"github.com/google/go-cloud/gcp"
	"github.com/sirupsen/logrus"
)

// maxRetries is the number of times a failed HTTP download is retried.
var maxRetries uint64 = 5

// fetch reads the file at path, which can be a local file, an http(s) URL,
// or a blob URL.
func fetch(ctx context.Context, path string, log logrus.FieldLogger) ([]byte, error) {
	// Check if local file exists. If it does, read it.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return ioutil.ReadFile(path)
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return fetchHTTP(ctx, path, log)
	}
	if IsBlob(path) {
		return fetchBlob(ctx, path)
	}
	return nil, fmt.Errorf("outbreakutil: file %s does not exist", path)
}

// fetchHTTP downloads the file at the specified URL. Server errors and
// network failures are retried with exponential backoff; client errors
// such as 404 are not.
func fetchHTTP(ctx context.Context, path string, log logrus.FieldLogger) ([]byte, error) {
	var b []byte
	var permanent error
	err := backoff.RetryNotify(
		func() error {
			req, err := http.NewRequest(http.MethodGet, path, nil)
			if err != nil {
				permanent = err
				return nil
			}
			resp, err := http.DefaultClient.Do(req.WithContext(ctx))
			if err != nil {
				if ctx.Err() != nil {
					permanent = ctx.Err()
					return nil
				}
				return err
			}
			defer resp.Body.Close()
			switch {
			case resp.StatusCode >= 500:
				return fmt.Errorf("downloading %s: %s", path, resp.Status)
			case resp.StatusCode >= 400:
				permanent = fmt.Errorf("downloading %s: %s", path, resp.Status)
				return nil
			}
			b, err = ioutil.ReadAll(resp.Body)
			return err
		},
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries),
		func(err error, d time.Duration) {
			log.WithField("url", path).Warnf("%v: retrying in %v", err, d)
		},
	)
	if err == nil {
		err = permanent
	}
	if err != nil {
		return nil, fmt.Errorf("outbreakutil: %v", err)
	}
	return b, nil
}

// IsBlob returns whether the given filename represents a blob.
// (i.e., if it starts with `gs://`, 's3://', or 'file://').
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

// OpenBucket returns the blob storage bucket specified by bucketName,
// where bucketName must be in the format 'provider://name' where provider
// is the name of the storage provider and name is the name of the bucket.
// The currently accepted storage providers are "file" for the local filesystem,
// where name is a directory, "gs" for Google Cloud Storage, and "s3" for AWS S3.
func OpenBucket(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	url, err := url.Parse(bucketName)
	if err != nil {
		return nil, fmt.Errorf("outbreakutil.OpenBucket: %v", err)
	}
	switch url.Scheme {
	case "file":
		return fileblob.NewBucket(url.Host + url.Path)
	case "gs":
		return gsBucket(ctx, url.Hostname())
	case "s3":
		return s3Bucket(ctx, url.Hostname())
	default:
		return nil, fmt.Errorf("outbreakutil.OpenBucket: invalid provider %s", url.Scheme)
	}
}

func gsBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	// See here for information on credentials:
	// https://cloud.google.com/docs/authentication/getting-started
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return nil, err
	}
	c, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
	if err != nil {
		return nil, err
	}
	return gcsblob.OpenBucket(ctx, name, c)
}

// s3Bucket opens an s3 storage bucket. It assumes the following
// environment variables are set: AWS_REGION, AWS_ACCESS_KEY_ID, and
// AWS_SECRET_ACCESS_KEY.
func s3Bucket(ctx context.Context, name string) (*blob.Bucket, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	c := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	}
	s, err := session.NewSession(c)
	if err != nil {
		return nil, err
	}
	return s3blob.OpenBucket(ctx, s, name)
}

// splitBlob splits a blob URL into its bucket and key. For file:// URLs the
// bucket is the directory holding the file.
func splitBlob(path string) (bucket, key string, err error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "file" {
		p := u.Host + u.Path
		i := strings.LastIndex(p, "/")
		if i < 0 {
			return "file://.", p, nil
		}
		return "file://" + p[:i], p[i+1:], nil
	}
	return u.Scheme + "://" + u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// fetchBlob reads the specified file from blob storage.
func fetchBlob(ctx context.Context, path string) ([]byte, error) {
	bucketName, key, err := splitBlob(path)
	if err != nil {
		return nil, fmt.Errorf("outbreakutil: %v", err)
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return nil, err
	}
	r, err := bucket.NewReader(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("outbreakutil: opening %s: %v", path, err)
	}
	defer r.Close()
	return ioutil.ReadAll(r)
}
