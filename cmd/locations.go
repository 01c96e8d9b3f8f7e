/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"time"

	"github.com/amphdata/amprep/internal/iogeocode"
	"github.com/amphdata/amprep/internal/iorecords"
	"github.com/amphdata/amprep/internal/ioresolve"
	"github.com/amphdata/amprep/internal/iostore"
	"github.com/amphdata/amprep/pkg/config"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getLocationsCmd returns the locations command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getLocationsCmd() *cobra.Command {
	var (
		storePath      string
		geocodeDB      string
		bootstrapStore bool
		jobs           int
		locationField  string
		formattedField string
	)

	locationsCmd := &cobra.Command{
		Use:   "locations INPUT.csv OUTPUT.csv",
		Short: "Normalize the location column of a record set",
		Long: `Run one location resolution pass over a species record set.

This command:
  1. Loads the reference store (location.json)
  2. Collects location tokens unknown to the store across all rows
  3. Resolves the deduplicated batch against the geocoding database
  4. Persists newly learned regions back to the store
  5. Writes a canonical location string into a new column of each row

The raw location column is never modified; the pass adds a derived
column (FormattedGeographicRegion by default). Running the command
twice over the same input produces the same output, resolved regions
are remembered by the store.

Examples:
  # Normalize locations with the default store and geocode database
  amprep locations species.csv species_out.csv

  # First run on a new machine, start from an empty store
  amprep locations species.csv species_out.csv --bootstrap-store

  # Explicit data files and a wider worker pool
  amprep locations species.csv out.csv \
    --store ./location.json --geocode-db ./location.db --jobs 8`,
		Aliases: []string{"loc"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLocations(cmd, args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	locationsCmd.Flags().StringVarP(
		&storePath, "store", "s", "",
		"path to the reference store document",
	)
	locationsCmd.Flags().StringVarP(
		&geocodeDB, "geocode-db", "g", "",
		"path to the geocoding SQLite database",
	)
	locationsCmd.Flags().BoolVarP(
		&bootstrapStore, "bootstrap-store", "b", false,
		"start from an empty store when the document is missing",
	)
	locationsCmd.Flags().IntVarP(
		&jobs, "jobs", "j", 0,
		"number of concurrent lookup workers",
	)
	locationsCmd.Flags().StringVar(
		&locationField, "location-field", "",
		"name of the raw location column",
	)
	locationsCmd.Flags().StringVar(
		&formattedField, "formatted-field", "",
		"name of the derived location column",
	)

	return locationsCmd
}

func runLocations(cmd *cobra.Command, input, output string) error {
	ctx := context.Background()

	// Build options from explicitly set flags
	var locOpts []config.Option

	if cmd.Flags().Changed("store") {
		s, _ := cmd.Flags().GetString("store")
		locOpts = append(locOpts, config.OptStorePath(s))
	}
	if cmd.Flags().Changed("geocode-db") {
		s, _ := cmd.Flags().GetString("geocode-db")
		locOpts = append(locOpts, config.OptGeocodeDatabase(s))
	}
	if cmd.Flags().Changed("bootstrap-store") {
		b, _ := cmd.Flags().GetBool("bootstrap-store")
		locOpts = append(locOpts, config.OptStoreBootstrap(b))
	}
	if cmd.Flags().Changed("jobs") {
		i, _ := cmd.Flags().GetInt("jobs")
		locOpts = append(locOpts, config.OptJobsNumber(i))
	}
	if cmd.Flags().Changed("location-field") {
		s, _ := cmd.Flags().GetString("location-field")
		locOpts = append(locOpts, config.OptRecordsLocationField(s))
	}
	if cmd.Flags().Changed("formatted-field") {
		s, _ := cmd.Flags().GetString("formatted-field")
		locOpts = append(locOpts, config.OptRecordsFormattedField(s))
	}

	if len(locOpts) > 0 {
		cfg.Update(locOpts)
	}

	rs, err := iorecords.Read(input)
	if err != nil {
		return err
	}
	gn.Info("Read <em>%s</em> records from <em>%s</em>",
		humanize.Comma(int64(rs.Len())), input)

	finder := iogeocode.New(
		cfg.GeocodeDatabasePath(),
		time.Duration(cfg.Geocode.TimeoutSec)*time.Second,
	)
	if err = finder.Connect(ctx); err != nil {
		return err
	}
	defer finder.Close()

	st := iostore.New(cfg.StorePath(), cfg.Store.Bootstrap)

	normalizer := ioresolve.New(cfg, st, finder)
	if err = normalizer.UpdateLocations(ctx, rs); err != nil {
		return err
	}

	if err = iorecords.Write(output, rs); err != nil {
		return err
	}

	gn.Info("Wrote normalized records to <em>%s</em>", output)
	return nil
}
