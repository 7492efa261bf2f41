package main

import (
	"fmt"
	"math"

	"github.com/mileslucas/nestfit/nested"
)

// exampleModel builds one of a small set of closed-form demonstration
// models, purely to give nestfit something to run — package nested itself
// carries no canned models, per spec.md's scope note.
func exampleModel(name string) (nested.Model, error) {
	switch name {
	case "gaussian2d":
		return gaussian2DModel(), nil
	case "eggbox":
		return eggboxModel(), nil
	case "mixture2d":
		return mixture2DModel(), nil
	default:
		return nested.Model{}, fmt.Errorf("unknown example model %q", name)
	}
}

// gaussian2DModel is a unit Gaussian likelihood on a wide uniform prior
// [-5,5]^2, spec.md's end-to-end scenario 1.
func gaussian2DModel() nested.Model {
	priors := []nested.Prior{
		nested.NewUniformPrior(-5, 5),
		nested.NewUniformPrior(-5, 5),
	}
	loglike := func(theta nested.PriorPoint) float64 {
		sum := 0.0
		for _, x := range theta {
			sum += x * x
		}
		return -0.5*sum - float64(len(theta))*0.5*math.Log(2*math.Pi)
	}
	return nested.Model{Dim: 2, Priors: priors, LogLike: loglike}
}

// eggboxModel is the highly multimodal eggbox likelihood on (0,1)^2,
// spec.md's end-to-end scenario 4.
func eggboxModel() nested.Model {
	priors := []nested.Prior{
		nested.NewUniformPrior(0, 1),
		nested.NewUniformPrior(0, 1),
	}
	loglike := func(theta nested.PriorPoint) float64 {
		t0 := math.Cos(theta[0] * 10 * math.Pi / 2)
		t1 := math.Cos(theta[1] * 10 * math.Pi / 2)
		return math.Pow(2+t0*t1, 5)
	}
	return nested.Model{Dim: 2, Priors: priors, LogLike: loglike}
}

// mixture2DModel is a two-mode Gaussian mixture with symmetric modes at
// (+-2, 0), spec.md's end-to-end scenario 3.
func mixture2DModel() nested.Model {
	priors := []nested.Prior{
		nested.NewUniformPrior(-5, 5),
		nested.NewUniformPrior(-5, 5),
	}
	logNorm := func(x, y, mx, my float64) float64 {
		dx, dy := x-mx, y-my
		return -0.5*(dx*dx+dy*dy) - math.Log(2*math.Pi)
	}
	loglike := func(theta nested.PriorPoint) float64 {
		a := logNorm(theta[0], theta[1], 2, 0)
		b := logNorm(theta[0], theta[1], -2, 0)
		if a > b {
			return a + math.Log1p(math.Exp(b-a)) - math.Log(2)
		}
		return b + math.Log1p(math.Exp(a-b)) - math.Log(2)
	}
	return nested.Model{Dim: 2, Priors: priors, LogLike: loglike}
}
