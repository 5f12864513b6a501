// Copyright (c) 2026, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package p1db refers 1 dB compression points (P1dB) between the input and output of a gain
// stage and combines the compression points of cascaded stages.
package p1db

import (
	"math"

	"github.com/openthread/ot-rfconv/power"
)

// Stage is one stage of a chain: its own output-referred P1dB in dBm and its small-signal gain
// in dB.
type Stage struct {
	OutputP1dB float64
	Gain       float64
}

// InputToOutputDb refers an input P1dB (dBm) to the output of a stage with the given
// small-signal gain (dB). At the compression point the gain is already 1 dB below its
// small-signal value, so OP1dB = IP1dB + (gain - 1).
func InputToOutputDb(inputP1dB float64, gainDb float64) float64 {
	return inputP1dB + (gainDb - 1.0)
}

// OutputToInputDb refers an output P1dB (dBm) to the input of a stage; the exact inverse of
// InputToOutputDb.
func OutputToInputDb(outputP1dB float64, gainDb float64) float64 {
	return outputP1dB - (gainDb - 1.0)
}

// CascadeOutputLinear combines the output P1dB of the chain so far with the next stage, all in
// linear units (P1dB in mW or W, gain as a ratio):
//
//	P = 1 / (G/Pcum + 1/Pstage)
func CascadeOutputLinear(cumulativeOutputP1dB float64, stageOutputP1dB float64, stageGain float64) float64 {
	return 1.0 / (1.0/cumulativeOutputP1dB*stageGain + 1.0/stageOutputP1dB)
}

// CascadeOutput is CascadeOutputLinear in the dB domain: P1dB values in dBm, gain in dB.
func CascadeOutput(cumulativeOutputP1dB float64, stageOutputP1dB float64, stageGainDb float64) float64 {
	return power.LinearToDb(CascadeOutputLinear(
		power.DbToLinear(cumulativeOutputP1dB),
		power.DbToLinear(stageOutputP1dB),
		power.DbToLinear(stageGainDb),
	))
}

// CascadeOutputChain returns the output P1dB (dBm) of a whole chain by folding CascadeOutput over
// the stages, starting from the first stage's own output P1dB. A single stage returns its own
// OP1dB; an empty chain never compresses and returns +Inf.
func CascadeOutputChain(stages []Stage) float64 {
	if len(stages) == 0 {
		return math.Inf(1)
	}

	cumulative := stages[0].OutputP1dB
	for _, s := range stages[1:] {
		cumulative = CascadeOutput(cumulative, s.OutputP1dB, s.Gain)
	}
	return cumulative
}
