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
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/notargets/gotransition/InputParameters"
	"github.com/notargets/gotransition/RAS/boundary"
	"github.com/notargets/gotransition/RAS/correlations"
	"github.com/notargets/gotransition/RAS/equilibrium"
)

// InletCmd represents the inlet command
var InletCmd = &cobra.Command{
	Use:   "inlet",
	Short: "Inflow value of ReThetatTilda",
	Long: `
Prints the ReThetatTilda inflow value for a fixed turbulence intensity, or for the
intensity given by k and the inflow speed.

gotransition inlet --k 0.0476 --U 5.4
gotransition inlet --tu 3.3 -c Malan2009`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			tc  = InputParameters.NewTransitionCoefficients()
			bc  *boundary.ReThetatTildaInlet
		)
		tc.Correlation, _ = cmd.Flags().GetString("correlation")
		Tu, _ := cmd.Flags().GetFloat64("tu")
		k, _ := cmd.Flags().GetFloat64("k")
		U, _ := cmd.Flags().GetFloat64("U")
		if bc, err = boundary.NewReThetatTildaInlet(tc, Tu); err != nil {
			panic(err)
		}
		if Tu == 0 {
			Tu = equilibrium.TurbulenceIntensity(k, U)
		}
		Tu = math.Max(Tu, correlations.TuMin)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: Tu = %.4f%%, ReThetatTilda = %.4f\n",
			bc.Corr, Tu, bc.Value(k, [3]float64{U, 0, 0}))
	},
}

func init() {
	rootCmd.AddCommand(InletCmd)
	InletCmd.Flags().StringP("correlation", "c", "Menter2009", "correlation, Tomac2013 has no inlet condition")
	InletCmd.Flags().Float64("tu", 0, "fixed turbulence intensity in percent, zero uses k and U")
	InletCmd.Flags().Float64("k", 0.0476, "turbulence kinetic energy at the inflow")
	InletCmd.Flags().Float64("U", 5.4, "inflow speed")
}
