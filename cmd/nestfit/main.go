// Command nestfit exercises the nested package end to end, the way the
// teacher's mcmct and dpp_gibbs commands exercise package cophymaru: it
// wires a model, runs the sampler to convergence, and prints a summary.
// The generic iterate-until-converged loop lives here, not in package
// nested — that loop is a trivial wrapper outside the sampler core.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/mileslucas/nestfit/nested"
)

func main() {
	modelArg := flag.String("model", "gaussian2d", "example model to run: gaussian2d, eggbox, mixture2d")
	nliveArg := flag.Int("nlive", 500, "number of live points")
	boundArg := flag.String("bound", "ellipsoid", "bound: unitcube, ellipsoid, multiellipsoid")
	propArg := flag.String("proposal", "uniform", "proposal: uniform, rwalk, rslice, slice")
	enlargeArg := flag.Float64("enlarge", 1.25, "bound enlargement factor")
	dlogzArg := flag.Float64("dlogz", nested.DefaultDlogzTau, "dlogz convergence threshold")
	declineArg := flag.Float64("decline", nested.DefaultDeclineFactor, "decline convergence factor")
	seedArg := flag.Int64("seed", 1, "random seed")
	maxIterArg := flag.Int("maxiter", 200000, "hard cap on iterations, in case convergence never triggers")
	flag.Parse()

	model, err := exampleModel(*modelArg)
	if err != nil {
		log.Fatal(err)
	}

	cfg := nested.Config{
		NActive:  *nliveArg,
		Bound:    parseBound(*boundArg),
		Proposal: parseProposal(*propArg),
		Enlarge:  *enlargeArg,
	}

	sampler, err := nested.NewSampler(model, cfg, *seedArg)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	for i := 0; i < *maxIterArg; i++ {
		if _, err := sampler.Step(); err != nil {
			log.Fatal(err)
		}
		if sampler.DlogzConverged(*dlogzArg) || sampler.DeclineConverged(*declineArg) {
			break
		}
	}
	elapsed := time.Since(start)

	summary := sampler.Finalize()
	fmt.Println("model", *modelArg, "iterations", summary.Iterations, "ncalls", summary.NCalls)
	fmt.Println("logZ", summary.LogZ, "+/-", summary.LogZErr, "H", summary.H)
	for _, w := range summary.Warnings {
		fmt.Println("warning:", w.String())
	}
	fmt.Println("completed in", elapsed)
}

func parseBound(s string) nested.BoundKind {
	switch s {
	case "unitcube":
		return nested.BoundUnitCube
	case "multiellipsoid":
		return nested.BoundMultiEllipsoid
	default:
		return nested.BoundEllipsoid
	}
}

func parseProposal(s string) nested.ProposalKind {
	switch s {
	case "rwalk":
		return nested.ProposalRWalk
	case "rslice":
		return nested.ProposalRSlice
	case "slice":
		return nested.ProposalSlice
	default:
		return nested.ProposalUniform
	}
}
