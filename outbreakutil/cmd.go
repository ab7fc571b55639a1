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
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/outbreak"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	modelSets := []*pflag.FlagSet{runCmd.Flags(), correlateCmd.Flags()}

	// Options are the configuration options available to Outbreak.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Verbose",
			usage: `
              Verbose specifies whether to log debugging information, such as
              the reason each region was left out of the comparison.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OnsetThreshold",
			usage: `
              OnsetThreshold is the number of deaths that marks the first day
              of a region's curve.`,
			defaultVal: 3.0,
			flagsets:   modelSets,
		},
		{
			name: "OnsetCumulative",
			usage: `
              OnsetCumulative specifies whether OnsetThreshold is compared with
              the running total of deaths instead of the daily number of deaths.`,
			defaultVal: false,
			flagsets:   modelSets,
		},
		{
			name: "Comparators",
			usage: `
              Comparators is the number of regions most correlated with the
              reference that are used for the projection.`,
			shorthand:  "k",
			defaultVal: 5,
			flagsets:   modelSets,
		},
		{
			name: "SmoothingWindow",
			usage: `
              SmoothingWindow is the number of days in the trailing moving
              average applied to the curves before the projection.`,
			defaultVal: 7,
			flagsets:   modelSets,
		},
		{
			name: "Correction",
			usage: `
              Correction multiplies the deaths reported in the target country
              to account for under-reporting.`,
			defaultVal: 1.48,
			flagsets:   modelSets,
		},
		{
			name: "Target.Country",
			usage: `
              Target.Country is the name of the target country in the deaths
              table.`,
			defaultVal: "Brazil",
			flagsets:   modelSets,
		},
		{
			name: "Target.Region",
			usage: `
              Target.Region is the name given to the region cut of the target
              country.`,
			defaultVal: "SP",
			flagsets:   modelSets,
		},
		{
			name: "Target.City",
			usage: `
              Target.City is the name given to the city cut of the target
              country.`,
			defaultVal: "SP_City",
			flagsets:   modelSets,
		},
		{
			name: "Target.Complement",
			usage: `
              Target.Complement is the name given to the target country minus
              its region cut.`,
			defaultVal: "Brazil_sem_SP",
			flagsets:   modelSets,
		},
		{
			name: "Target.RegionPlaceType",
			usage: `
              Target.RegionPlaceType is the place_type of the rows of the
              sub-regions file that hold the region cut.`,
			defaultVal: "state",
			flagsets:   modelSets,
		},
		{
			name: "Target.CityName",
			usage: `
              Target.CityName is the city of the rows of the sub-regions file
              that hold the city cut.`,
			defaultVal: "São Paulo",
			flagsets:   modelSets,
		},
		{
			name: "Reference",
			usage: `
              Reference is the name of the cut the projection is made for. It
              must be one of the Target.Country, Target.Region, Target.City or
              Target.Complement names.`,
			shorthand:  "r",
			defaultVal: "SP_City",
			flagsets:   modelSets,
		},
		{
			name: "Data.Deaths",
			usage: `
              Data.Deaths is the location of the daily deaths table, with a date
              column followed by one column per region. It can be a local file,
              an http(s) URL, or a file://, gs:// or s3:// blob URL.`,
			defaultVal: "https://covid.ourworldindata.org/data/ecdc/new_deaths.csv",
			flagsets:   modelSets,
		},
		{
			name: "Data.Locations",
			usage: `
              Data.Locations is the location of the table holding the
              population of each region.`,
			defaultVal: "https://covid.ourworldindata.org/data/ecdc/locations.csv",
			flagsets:   modelSets,
		},
		{
			name: "Data.SubRegions",
			usage: `
              Data.SubRegions is the location of the table holding cumulative
              deaths in the region and city cuts of the target country.`,
			defaultVal: "https://brasil.io/dataset/covid19/caso?state=SP&format=csv",
			flagsets:   modelSets,
		},
		{
			name: "Data.Catalog",
			usage: `
              Data.Catalog is the location of a TOML region catalog with region
              name aliases, population overrides and chart labels. If it is
              empty, the built-in catalog is used.`,
			defaultVal: "",
			flagsets:   modelSets,
		},
		{
			name: "Data.CacheDir",
			usage: `
              Data.CacheDir is a directory where downloaded input files are
              kept between runs. If it is empty, downloads are not kept.`,
			defaultVal: "",
			flagsets:   modelSets,
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the result of the run is written
              in JSON format. It can be a local file or a blob URL. If it is
              empty, no file is written.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ChartFile",
			usage: `
              ChartFile is the path where a chart of the projection is
              written. The format is set by the file extension, which can be
              .png, .svg or .pdf among others. If it is empty, no chart is drawn.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("OUTBREAK")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(correlateCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("outbreak: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// setLogger configures the standard logger.
func setLogger() {
	log := logrus.StandardLogger()
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	}
	if Cfg.GetBool("Verbose") {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "outbreak",
	Short: "Near-term projection of COVID-19 deaths by comparison with other regions.",
	Long: `Outbreak projects the daily deaths of a COVID-19 outbreak in a target region
from the curves of the regions whose outbreaks started earlier and whose curves,
aligned on the day deaths started, are most correlated with it.
Use the subcommands specified below to access the model functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'OUTBREAK_var' where 'var' is the
name of the variable to be set, with '.' replaced by '_'. Data locations
are additionally allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if err := setConfig(); err != nil {
			return err
		}
		setLogger()
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Outbreak.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Outbreak v%s\n", outbreak.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run downloads the input data, projects the daily deaths of the reference
cut of the target country, and prints a summary of the projection. If OutputFile
or ChartFile are set, the full result and a chart are also written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := Run(context.Background(), Cfg, cmd.OutOrStdout(), logrus.StandardLogger())
		return err
	},
	DisableAutoGenTag: true,
}

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Print the correlation of every region with the reference.",
	Long: `correlate downloads the input data, aligns the regions on their onset day,
and prints every eligible region ranked by the correlation of its curve with the
curve of the reference cut, as well as the regions that were left out and why.
The first Comparators regions of the ranking are the ones run would use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Correlate(context.Background(), Cfg, cmd.OutOrStdout(), logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}
