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
	"fmt"

	"github.com/amphdata/amprep/internal/ionames"
	"github.com/amphdata/amprep/internal/iorecords"
	"github.com/amphdata/amprep/pkg/config"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getNamesCmd returns the names command.
func getNamesCmd() *cobra.Command {
	var (
		genusField   string
		speciesField string
	)

	namesCmd := &cobra.Command{
		Use:   "names INPUT.csv",
		Short: "Check scientific names of a record set",
		Long: `Parse every row's Genus+Species binomial with gnparser and report
the rows whose names do not parse. Report sections and sort order
depend on these names, so bad ones are worth fixing before a report
run.

Examples:
  amprep names species.csv
  amprep names species.csv --genus-field Gen --species-field Sp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runNames(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	namesCmd.Flags().StringVar(
		&genusField, "genus-field", "",
		"name of the genus column",
	)
	namesCmd.Flags().StringVar(
		&speciesField, "species-field", "",
		"name of the species column",
	)

	return namesCmd
}

func runNames(cmd *cobra.Command, input string) error {
	ctx := context.Background()

	var nameOpts []config.Option
	if cmd.Flags().Changed("genus-field") {
		s, _ := cmd.Flags().GetString("genus-field")
		nameOpts = append(nameOpts, config.OptRecordsGenusField(s))
	}
	if cmd.Flags().Changed("species-field") {
		s, _ := cmd.Flags().GetString("species-field")
		nameOpts = append(nameOpts, config.OptRecordsSpeciesField(s))
	}
	if len(nameOpts) > 0 {
		cfg.Update(nameOpts)
	}

	rs, err := iorecords.Read(input)
	if err != nil {
		return err
	}

	checker := ionames.New(cfg)
	issues, err := checker.CheckNames(ctx, rs)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		gn.Info("All <em>%s</em> names parsed",
			humanize.Comma(int64(rs.Len())))
		return nil
	}

	gn.Warn("<warn>%d of %d names did not parse:</warn>",
		len(issues), rs.Len())
	for _, issue := range issues {
		fmt.Printf("  row %d: %q (id %s)\n", issue.Row+1, issue.Name, issue.ID)
	}
	return nil
}
