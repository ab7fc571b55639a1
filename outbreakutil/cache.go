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
	"time"

	"github.com/ctessum/requestcache"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/outbreak/internal/hash"
)

// Fetcher reads input files. Each file is only downloaded once per day,
// even when it is requested concurrently; downloads are kept in memory and,
// if a cache directory is given, on disk. The input tables are updated
// daily, so a download cached on an earlier day is not reused.
type Fetcher struct {
	cache *requestcache.Cache
	log   logrus.FieldLogger

	// today returns the current time. It sets the day a download is
	// cached for.
	today func() time.Time
}

// cacheKey identifies a download.
type cacheKey struct {
	Path, Day string
}

// memCacheSize is the number of files held in memory.
const memCacheSize = 10

// NewFetcher returns a fetcher that stores downloaded files in cacheDir.
// If cacheDir is "", files are only cached in memory.
func NewFetcher(cacheDir string, log logrus.FieldLogger) *Fetcher {
	f := &Fetcher{log: log, today: time.Now}
	process := func(ctx context.Context, payload interface{}) (interface{}, error) {
		path := payload.(string)
		f.log.WithField("file", path).Info("reading input file")
		return fetch(ctx, path, f.log)
	}
	if cacheDir == "" {
		f.cache = requestcache.NewCache(process, 1, requestcache.Deduplicate(),
			requestcache.Memory(memCacheSize))
	} else {
		f.cache = requestcache.NewCache(process, 1, requestcache.Deduplicate(),
			requestcache.Memory(memCacheSize), requestcache.Disk(cacheDir, requestcache.MarshalGob, requestcache.UnmarshalGob))
	}
	return f
}

// Fetch returns the contents of the file at path, which can be a local
// file, an http(s) URL, or a blob URL.
func (f *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	key := cacheKey{Path: path, Day: f.today().Format(dateFormat)}
	r := f.cache.NewRequest(ctx, path, "input_"+hash.Hash(key))
	result, err := r.Result()
	if err != nil {
		return nil, err
	}
	switch b := result.(type) {
	case []byte:
		return b, nil
	default:
		return nil, fmt.Errorf("outbreakutil: invalid cached data type %T for %s", result, path)
	}
}

// Requests returns the number of requests received by each cache layer
// and, last, the number of files actually read.
func (f *Fetcher) Requests() []int { return f.cache.Requests() }
