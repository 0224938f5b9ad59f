/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/gotransition/RAS/correlations"
)

// CorrelateCmd represents the correlate command
var CorrelateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Tabulate the transition onset correlations over turbulence intensity",
	Long: `
Prints ReThetat, ReThetac and Flength against the turbulence intensity Tu (percent)
for one correlation, or for all of them side by side with --all.

gotransition correlate -c Suluksna2009 --lambda 0.02`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err  error
			ct   = &CorrelationTable{}
			name string
			all  bool
		)
		name, _ = cmd.Flags().GetString("correlation")
		all, _ = cmd.Flags().GetBool("all")
		ct.Lambda, _ = cmd.Flags().GetFloat64("lambda")
		ct.K, _ = cmd.Flags().GetFloat64("K")
		ct.TuMin, _ = cmd.Flags().GetFloat64("tuMin")
		ct.TuMax, _ = cmd.Flags().GetFloat64("tuMax")
		ct.N, _ = cmd.Flags().GetInt("n")
		if all {
			ct.Correlations = correlations.AllCorrelations
		} else {
			var c correlations.Correlation
			if c, err = correlations.NewCorrelation(name); err != nil {
				panic(err)
			}
			ct.Correlations = []correlations.Correlation{c}
		}
		if err = ct.Compute(context.Background()); err != nil {
			panic(err)
		}
		ct.Print(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(CorrelateCmd)
	CorrelateCmd.Flags().StringP("correlation", "c", "Menter2009", "correlation: "+correlations.Names())
	CorrelateCmd.Flags().BoolP("all", "a", false, "tabulate every correlation")
	CorrelateCmd.Flags().Float64("lambda", 0, "pressure gradient parameter lambdaTheta")
	CorrelateCmd.Flags().Float64("K", 0, "acceleration parameter, used by Suluksna2009")
	CorrelateCmd.Flags().Float64("tuMin", 0.1, "smallest turbulence intensity, percent")
	CorrelateCmd.Flags().Float64("tuMax", 10, "largest turbulence intensity, percent")
	CorrelateCmd.Flags().IntP("n", "n", 12, "number of intensities, log spaced")
}

type CorrelationRow struct {
	Tu, ReThetat, ReThetac, Flength float64
}

type CorrelationTable struct {
	Correlations []correlations.Correlation
	Lambda, K    float64
	TuMin, TuMax float64
	N            int
	Rows         [][]CorrelationRow // Per correlation
}

// Compute evaluates each correlation on its own goroutine
func (ct *CorrelationTable) Compute(ctx context.Context) (err error) {
	if ct.N < 2 || !(ct.TuMin > 0) || ct.TuMax <= ct.TuMin {
		return fmt.Errorf("need n >= 2 and 0 < tuMin < tuMax, have n = %d, [%g, %g]", ct.N, ct.TuMin, ct.TuMax)
	}
	ct.Rows = make([][]CorrelationRow, len(ct.Correlations))
	g, ctx := errgroup.WithContext(ctx)
	for ic, c := range ct.Correlations {
		ic, c := ic, c
		g.Go(func() error {
			rows := make([]CorrelationRow, ct.N)
			for i := range rows {
				if err := ctx.Err(); err != nil {
					return err
				}
				Tu := ct.intensity(i)
				R := c.ReThetat(Tu, ct.Lambda, ct.K)
				rows[i] = CorrelationRow{Tu: Tu, ReThetat: R, ReThetac: c.ReThetac(R), Flength: c.Flength(R)}
			}
			ct.Rows[ic] = rows
			return nil
		})
	}
	return g.Wait()
}

func (ct *CorrelationTable) intensity(i int) float64 {
	var (
		r = float64(i) / float64(ct.N-1)
	)
	return ct.TuMin * math.Pow(ct.TuMax/ct.TuMin, r)
}

func (ct *CorrelationTable) Print(w io.Writer) {
	for ic, c := range ct.Correlations {
		fmt.Fprintf(w, "# %s, lambda = %g, K = %g\n", c, ct.Lambda, ct.K)
		fmt.Fprintf(w, "%10s %12s %12s %10s\n", "Tu[%]", "ReThetat", "ReThetac", "Flength")
		for _, r := range ct.Rows[ic] {
			fmt.Fprintf(w, "%10.4f %12.4f %12.4f %10.5f\n", r.Tu, r.ReThetat, r.ReThetac, r.Flength)
		}
	}
}
