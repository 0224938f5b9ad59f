package FV2D

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/gotransition/InputParameters"
	"github.com/notargets/gotransition/RAS/gammaReThetatSST"
	"github.com/notargets/gotransition/types"
	"github.com/notargets/gotransition/utils"
)

type FlatPlate struct {
	Case  *InputParameters.CaseParameters
	Host  *Solver
	Model *gammaReThetatSST.Model
	log   *log.Entry
}

// NewFlatPlate starts the whole domain at the inflow state. reg may be nil.
func NewFlatPlate(cp *InputParameters.CaseParameters, entry *log.Entry, reg prometheus.Registerer) (fp *FlatPlate, err error) {
	var (
		host  *Solver
		model *gammaReThetatSST.Model
	)
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	entry = entry.WithField("case", cp.Title)
	if host, err = NewSolver(cp, entry); err != nil {
		return
	}
	kIn, omegaIn := cp.InletTurbulence()
	opts := []gammaReThetatSST.Option{
		gammaReThetatSST.WithLogger(entry),
		gammaReThetatSST.WithProcLimit(cp.ProcLimit),
		gammaReThetatSST.WithFields(gammaReThetatSST.UniformFields(host.NCells(),
			1, host.InletValues(types.ReThetatTilda)[0], kIn, omegaIn)),
	}
	if reg != nil {
		opts = append(opts, gammaReThetatSST.WithRegisterer(reg, cp.Title))
	}
	if model, err = gammaReThetatSST.New(host, &cp.Coefficients, opts...); err != nil {
		return
	}
	fp = &FlatPlate{Case: cp, Host: host, Model: model, log: entry}
	return
}

// Run advances the case by its number of steps, or until ctx is done
func (fp *FlatPlate) Run(ctx context.Context) (err error) {
	var (
		every = max(fp.Case.Steps/10, 1)
	)
	for step := 1; step <= fp.Case.Steps; step++ {
		if err = ctx.Err(); err != nil {
			return
		}
		if err = fp.Model.Correct(); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		if step%every == 0 || step == fp.Case.Steps {
			fp.progress(step)
		}
	}
	return
}

func (fp *FlatPlate) progress(step int) {
	var (
		alloc, sys, numGC = utils.GetMemUsage()
		fields            = log.Fields{
			"step":         step,
			"time":         float64(step) * fp.Case.DeltaT,
			"nonConverged": fp.Model.NonConverged(),
			"allocMiB":     alloc,
			"sysMiB":       sys,
			"numGC":        numGC,
		}
	)
	if x, gw := fp.WallProfile(types.Gamma, 0); len(gw) != 0 {
		fields["gammaWallTE"], fields["x"] = gw[len(gw)-1], x[len(x)-1]
	}
	fp.log.WithFields(fields).Info("flat plate")
}

// WallProfile is a field along the plate at row j above the wall
func (fp *FlatPlate) WallProfile(name types.FieldName, j int) (x, v []float64) {
	var (
		g = fp.Host.Grid
	)
	field, err := fp.Model.Field(name)
	if err != nil {
		panic(err)
	}
	for i := 0; i < g.Nx; i++ {
		if g.South[i] != types.BC_Wall {
			continue
		}
		x = append(x, g.XC[i]-g.LeadingEdge)
		v = append(v, field[g.Index(i, j)])
	}
	return
}
