package FV2D

import (
	"errors"
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gotransition/utils"
)

var ErrNotConverged = errors.New("BiCGSTAB did not converge")

// LinearSystem is A x = b with A in compressed row form
type LinearSystem struct {
	A    *sparse.CSR
	B    []float64
	diag []float64
	pm   *utils.PartitionMap
}

func NewLinearSystem(A *sparse.CSR, b []float64, pm *utils.PartitionMap) (ls *LinearSystem) {
	var (
		raw = A.RawMatrix()
		n   = len(b)
	)
	ls = &LinearSystem{A: A, B: b, diag: make([]float64, n), pm: pm}
	for i := 0; i < n; i++ {
		for p := raw.Indptr[i]; p < raw.Indptr[i+1]; p++ {
			if raw.Ind[p] == i {
				ls.diag[i] = raw.Data[p]
			}
		}
	}
	return
}

// MulVec sets y = A x
func (ls *LinearSystem) MulVec(y, x []float64) {
	var (
		raw = ls.A.RawMatrix()
	)
	ls.pm.ParallelFor(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			var sum float64
			for p := raw.Indptr[i]; p < raw.Indptr[i+1]; p++ {
				sum += raw.Data[p] * x[raw.Ind[p]]
			}
			y[i] = sum
		}
	})
}

func (ls *LinearSystem) precondition(z, r []float64) {
	for i := range z {
		d := ls.diag[i]
		if d == 0 {
			z[i] = r[i]
			continue
		}
		z[i] = r[i] / d
	}
}

// BiCGSTAB solves in place starting from x, with a Jacobi preconditioner. The
// iteration stops when |b - A x| <= tol |b|.
func (ls *LinearSystem) BiCGSTAB(x []float64, tol float64, maxIter int) (iters int, residual float64, err error) {
	var (
		n                       = len(x)
		r, rhat, p, v, s, t     = make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
		phat, shat              = make([]float64, n), make([]float64, n)
		rho, alpha, omega, beta = 1., 1., 1., 0.
		bnorm                   = floats.Norm(ls.B, 2)
	)
	if bnorm == 0 {
		bnorm = 1
	}
	ls.MulVec(r, x)
	floats.SubTo(r, ls.B, r)
	copy(rhat, r)
	if residual = floats.Norm(r, 2) / bnorm; residual <= tol {
		return
	}
	for iters = 1; iters <= maxIter; iters++ {
		rhoNew := floats.Dot(rhat, r)
		if rhoNew == 0 || math.IsNaN(rhoNew) {
			err = fmt.Errorf("%w: breakdown after %d iterations, residual %g", ErrNotConverged, iters, residual)
			return
		}
		beta = (rhoNew / rho) * (alpha / omega)
		// p = r + beta (p - omega v)
		floats.AddScaled(p, -omega, v)
		floats.Scale(beta, p)
		floats.Add(p, r)
		ls.precondition(phat, p)
		ls.MulVec(v, phat)
		alpha = rhoNew / floats.Dot(rhat, v)
		floats.AddScaledTo(s, r, -alpha, v)
		if residual = floats.Norm(s, 2) / bnorm; residual <= tol {
			floats.AddScaled(x, alpha, phat)
			return
		}
		ls.precondition(shat, s)
		ls.MulVec(t, shat)
		tt := floats.Dot(t, t)
		if tt == 0 {
			err = fmt.Errorf("%w: stagnation after %d iterations, residual %g", ErrNotConverged, iters, residual)
			return
		}
		if omega = floats.Dot(t, s) / tt; omega == 0 {
			err = fmt.Errorf("%w: omega vanished after %d iterations, residual %g", ErrNotConverged, iters, residual)
			return
		}
		floats.AddScaled(x, alpha, phat)
		floats.AddScaled(x, omega, shat)
		floats.AddScaledTo(r, s, -omega, t)
		if residual = floats.Norm(r, 2) / bnorm; residual <= tol {
			return
		}
		rho = rhoNew
	}
	iters = maxIter
	err = fmt.Errorf("%w: %d iterations, residual %g", ErrNotConverged, maxIter, residual)
	return
}
