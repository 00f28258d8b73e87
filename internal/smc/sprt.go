// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package smc

import (
	"math"

	"github.com/dalzilio/tpnv/internal/query"
)

// SPRT is Wald's sequential probability ratio test, deciding whether
// P(condition) >= target within an indifference region, bounding both the
// false-positive and false-negative rates, using as few runs as the data
// allows rather than a fixed sample size.
type SPRT struct {
	TargetProbability float64
	FalsePositives    float64
	FalseNegatives    float64
	IndifferenceUp    float64
	IndifferenceDown  float64

	p0, p1         float64
	boundH0, boundH1 float64
	currentRatio   float64
	status         query.VerificationStatus
	runsExecuted   int
}

// NewSPRT tests H0: P(condition) >= target against H1: P(condition) <
// target, with an indifference region [target-down, target+up] where
// either answer is accepted, bounding the false-positive rate at alpha and
// the false-negative rate at beta.
func NewSPRT(target, alpha, beta, indifferenceUp, indifferenceDown float64) *SPRT {
	p0 := target + indifferenceUp
	p1 := target - indifferenceDown
	return &SPRT{
		TargetProbability: target,
		FalsePositives:    alpha,
		FalseNegatives:    beta,
		IndifferenceUp:    indifferenceUp,
		IndifferenceDown:  indifferenceDown,
		p0:                p0,
		p1:                p1,
		boundH0:           math.Log(beta / (1.0 - alpha)),
		boundH1:           math.Log((1.0 - beta) / alpha),
		status:            query.StatusMaybe,
	}
}

func (s *SPRT) HandleRunResult(result query.VerificationStatus) {
	switch result {
	case query.StatusVerified:
		s.currentRatio += math.Log(s.p1 / s.p0)
	case query.StatusUnverified:
		s.currentRatio += math.Log((1.0 - s.p1) / (1.0 - s.p0))
	}
	if s.currentRatio <= s.boundH0 {
		s.status = query.StatusVerified
	} else if s.currentRatio >= s.boundH1 {
		s.status = query.StatusUnverified
	}
	s.runsExecuted++
}

func (s *SPRT) MustDoAnotherRun() bool {
	return s.runsExecuted == 0 || s.status.Unsure()
}

func (s *SPRT) Result() Result { return BoolResult(s.status.Good()) }
