package nested

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// UniformPrior is a prior uniform on [lo, hi].
type UniformPrior struct {
	dist distuv.Uniform
}

// NewUniformPrior builds a uniform prior on [lo, hi].
func NewUniformPrior(lo, hi float64) *UniformPrior {
	return &UniformPrior{dist: distuv.Uniform{Min: lo, Max: hi}}
}

// Quantile returns the inverse CDF of the uniform prior at p.
func (u *UniformPrior) Quantile(p float64) float64 { return u.dist.Quantile(p) }

// CDF returns the cumulative density of the uniform prior at x.
func (u *UniformPrior) CDF(x float64) float64 { return u.dist.CDF(x) }

// NormalPrior is a Gaussian prior with mean Mu and standard deviation
// Sigma, mirroring the way the teacher wraps distuv.StudentsT in
// uvn_priors.go: the distribution itself does the quantile/CDF work.
type NormalPrior struct {
	dist distuv.Normal
}

// NewNormalPrior builds a Gaussian prior N(mu, sigma^2).
func NewNormalPrior(mu, sigma float64) *NormalPrior {
	return &NormalPrior{dist: distuv.Normal{Mu: mu, Sigma: sigma}}
}

// Quantile returns the inverse CDF of the Gaussian prior at p.
func (n *NormalPrior) Quantile(p float64) float64 { return n.dist.Quantile(p) }

// CDF returns the cumulative density of the Gaussian prior at x.
func (n *NormalPrior) CDF(x float64) float64 { return n.dist.CDF(x) }

// LogUniformPrior is uniform in log-space on [lo, hi], lo > 0. Useful for
// scale parameters the way a Jeffreys prior would be.
type LogUniformPrior struct {
	logLo, logHi float64
}

// NewLogUniformPrior builds a log-uniform prior on [lo, hi], lo > 0.
func NewLogUniformPrior(lo, hi float64) *LogUniformPrior {
	return &LogUniformPrior{logLo: math.Log(lo), logHi: math.Log(hi)}
}

// Quantile returns the inverse CDF of the log-uniform prior at p.
func (l *LogUniformPrior) Quantile(p float64) float64 {
	return math.Exp(l.logLo + p*(l.logHi-l.logLo))
}

// CDF returns the cumulative density of the log-uniform prior at x.
func (l *LogUniformPrior) CDF(x float64) float64 {
	return (math.Log(x) - l.logLo) / (l.logHi - l.logLo)
}
