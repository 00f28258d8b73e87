// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package smc

import (
	"math"

	"github.com/dalzilio/tpnv/internal/query"
)

// Estimation estimates P(condition) within a fixed interval width at a
// fixed confidence level by running a Chernoff-Hoeffding-bounded number of
// independent runs and reporting the fraction that verified.
type Estimation struct {
	Confidence    float64
	IntervalWidth float64
	RunsNeeded    int
	ExecutedRuns  int
	ValidRuns     int
}

// NewEstimation returns an Estimation targeting confidence (e.g. 0.95) and
// interval width (e.g. 0.1), with RunsNeeded set to the Chernoff-Hoeffding
// bound for that pair.
func NewEstimation(confidence, intervalWidth float64) *Estimation {
	return &Estimation{
		Confidence:    confidence,
		IntervalWidth: intervalWidth,
		RunsNeeded:    chernoffHoeffdingBound(confidence, intervalWidth),
	}
}

// chernoffHoeffdingBound returns the number of samples needed so that the
// estimated probability is within intervalWidth of the true value with
// probability at least confidence.
func chernoffHoeffdingBound(confidence, intervalWidth float64) int {
	bound := 4.0 * math.Log(2.0/(1.0-confidence)) / (intervalWidth * intervalWidth)
	return int(math.Ceil(bound))
}

func (e *Estimation) MustDoAnotherRun() bool { return e.ExecutedRuns < e.RunsNeeded }

func (e *Estimation) HandleRunResult(result query.VerificationStatus) {
	if result.Good() {
		e.ValidRuns++
	}
	e.ExecutedRuns++
}

func (e *Estimation) Result() Result {
	return FloatResult(float64(e.ValidRuns) / float64(e.ExecutedRuns))
}
