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
	"fmt"
	"os"
	"path/filepath"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/outbreak"
	"github.com/spf13/cast"
)

// ModelConfig returns the model configuration specified by cfg, with the
// population overrides of the region catalog cat. Overrides are only read
// from the catalog because viper doesn't preserve the case of map keys.
func ModelConfig(cfg *viper.Viper, cat *Catalog) (outbreak.Config, error) {
	var c outbreak.Config
	var err error
	if c.OnsetThreshold, err = cast.ToFloat64E(cfg.Get("OnsetThreshold")); err != nil {
		return c, fmt.Errorf("outbreakutil: OnsetThreshold: %v", err)
	}
	c.OnsetRule = outbreak.OnsetDaily
	if cfg.GetBool("OnsetCumulative") {
		c.OnsetRule = outbreak.OnsetCumulative
	}
	if c.Comparators, err = cast.ToIntE(cfg.Get("Comparators")); err != nil {
		return c, fmt.Errorf("outbreakutil: Comparators: %v", err)
	}
	if c.SmoothingWindow, err = cast.ToIntE(cfg.Get("SmoothingWindow")); err != nil {
		return c, fmt.Errorf("outbreakutil: SmoothingWindow: %v", err)
	}
	if c.Correction, err = cast.ToFloat64E(cfg.Get("Correction")); err != nil {
		return c, fmt.Errorf("outbreakutil: Correction: %v", err)
	}
	c.Cuts = outbreak.CutNames{
		Country:    cfg.GetString("Target.Country"),
		Region:     cfg.GetString("Target.Region"),
		City:       cfg.GetString("Target.City"),
		Complement: cfg.GetString("Target.Complement"),
	}
	ref := cfg.GetString("Reference")
	var ok bool
	if c.Reference, ok = c.Cuts.Lookup(ref); !ok {
		return c, fmt.Errorf("%w: Reference=%q but should be one of %v", outbreak.ErrInvalidConfig, ref, c.Cuts.All())
	}

	c.PopulationOverrides = make(map[string]float64, len(cat.PopulationOverrides))
	for k, v := range cat.PopulationOverrides {
		c.PopulationOverrides[k] = v
	}
	return c, c.Validate()
}

// sources returns the locations of the input data specified by cfg.
func sources(cfg *viper.Viper) Sources {
	return Sources{
		Deaths:          os.ExpandEnv(cfg.GetString("Data.Deaths")),
		Locations:       os.ExpandEnv(cfg.GetString("Data.Locations")),
		SubRegions:      os.ExpandEnv(cfg.GetString("Data.SubRegions")),
		RegionPlaceType: cfg.GetString("Target.RegionPlaceType"),
		CityName:        cfg.GetString("Target.CityName"),
	}
}

// loadCatalog returns the region catalog specified by the Data.Catalog
// option, or the built-in catalog if there isn't one.
func loadCatalog(ctx context.Context, cfg *viper.Viper, f *Fetcher) (*Catalog, error) {
	path := os.ExpandEnv(cfg.GetString("Data.Catalog"))
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := f.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return ReadCatalog(bytes.NewReader(b))
}

// checkOutputFile makes sure that the directory of the output file exists,
// and expands any environment variables. Empty paths are allowed and mean
// that the output isn't wanted.
func checkOutputFile(ctx context.Context, f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	if IsBlob(f) {
		bucket, _, err := splitBlob(f)
		if err != nil {
			return f, err
		}
		if _, err = OpenBucket(ctx, bucket); err != nil {
			return f, fmt.Errorf("outbreakutil: error when checking output location: %v", err)
		}
		return f, nil
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("outbreakutil: the output directory doesn't exist: %v", err)
	}
	return f, nil
}
