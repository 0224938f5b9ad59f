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
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gotransition/FV2D"
	"github.com/notargets/gotransition/InputParameters"
	"github.com/notargets/gotransition/types"
)

// FlatPlateCmd represents the flatplate command
var FlatPlateCmd = &cobra.Command{
	Use:   "flatplate",
	Short: "Run the transition model on a flat plate in a uniform stream",
	Long: `
Runs the gamma-ReThetat-SST model on the structured flat plate host and prints the
near wall intermittency along the plate.

gotransition flatplate -I case.yaml --dictionary coeffs.ini`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			fr  = &FlatPlateRun{}
		)
		fr.CaseFile, _ = cmd.Flags().GetString("inputConditionsFile")
		fr.DictFile, _ = cmd.Flags().GetString("dictionary")
		fr.Steps, _ = cmd.Flags().GetInt("steps")
		fr.Metrics, _ = cmd.Flags().GetBool("metrics")
		cp := processCase(fr)
		cp.Print()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err = fr.Run(ctx, cp, cmd.OutOrStdout()); err != nil {
			log.WithError(err).Error("flat plate run failed")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(FlatPlateCmd)
	FlatPlateCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML case file, defaults are used when empty")
	FlatPlateCmd.Flags().StringP("dictionary", "D", "", "INI file with a [gammaReThetatSSTCoeffs] section, overrides the case coefficients")
	FlatPlateCmd.Flags().IntP("steps", "s", 0, "number of steps, overrides the case file when positive")
	FlatPlateCmd.Flags().BoolP("metrics", "m", false, "print the model metrics at the end of the run")
}

type FlatPlateRun struct {
	CaseFile, DictFile string
	Steps              int
	Metrics            bool
}

const exampleCase = `
########################################
Title: "T3A flat plate"
Nx: 60
Ny: 40
Length: 1.
Height: 0.05
LeadingEdge: 0.05
GradingY: 1.15
UInf: 5.4
Nu: 1.5e-5
Tu: 3.3
ViscosityRatio: 12
Steps: 50
DeltaT: 0.001
West: inlet
East: outlet
North: far
gammaReThetatSSTCoeffs:
  correlation: Menter2009
  dUds: false
########################################
`

func processCase(fr *FlatPlateRun) (cp *InputParameters.CaseParameters) {
	var (
		err  error
		data []byte
	)
	cp = InputParameters.NewCaseParameters()
	if len(fr.CaseFile) != 0 {
		if data, err = os.ReadFile(fr.CaseFile); err != nil {
			panic(err)
		}
		if err = cp.Parse(data); err != nil {
			fmt.Printf("error: %s\nExample File:%s\n", err.Error(), exampleCase)
			os.Exit(1)
		}
	}
	if len(fr.DictFile) != 0 {
		var tc *InputParameters.TransitionCoefficients
		if tc, err = InputParameters.LoadDictionary(fr.DictFile); err != nil {
			panic(err)
		}
		cp.Coefficients = *tc
	}
	if fr.Steps > 0 {
		cp.Steps = fr.Steps
	}
	return
}

func (fr *FlatPlateRun) Run(ctx context.Context, cp *InputParameters.CaseParameters, w io.Writer) (err error) {
	var (
		fp  *FV2D.FlatPlate
		reg = prometheus.NewRegistry()
	)
	if fp, err = FV2D.NewFlatPlate(cp, log.NewEntry(log.StandardLogger()), reg); err != nil {
		return
	}
	if err = fp.Run(ctx); err != nil {
		return
	}
	x, gamma := fp.WallProfile(types.Gamma, 0)
	_, k := fp.WallProfile(types.K, 1)
	_, R := fp.WallProfile(types.ReThetatTilda, 0)
	fmt.Fprintf(w, "%10s %12s %10s %12s %14s\n", "x", "Rex", "gamma", "k(j=1)", "ReThetatTilda")
	for i := range x {
		fmt.Fprintf(w, "%10.5f %12.1f %10.5f %12.5e %14.4f\n", x[i], cp.UInf*x[i]/cp.Nu, gamma[i], k[i], R[i])
	}
	if fr.Metrics {
		var mfs, _ = reg.Gather()
		for _, mf := range mfs {
			for _, m := range mf.GetMetric() {
				fmt.Fprintf(w, "%s %g\n", mf.GetName(), m.GetCounter().GetValue())
			}
		}
	}
	return
}
