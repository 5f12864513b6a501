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

package noise

import "github.com/openthread/ot-rfconv/power"

// Stage is one stage of a receive chain for the Friis cascade functions. The units of Noise and
// Gain depend on the function the stage is passed to.
type Stage struct {
	Noise float64
	Gain  float64
}

// CascadeFactor returns the total noise factor of a chain of stages given as linear noise factor
// and linear gain:
//
//	F = F1 + (F2-1)/G1 + (F3-1)/(G1*G2) + ...
//
// An empty chain has noise factor 1. The gain of the last stage does not contribute.
func CascadeFactor(stages []Stage) float64 {
	if len(stages) == 0 {
		return 1.0
	}

	total := stages[0].Noise
	cumulativeGain := stages[0].Gain
	for _, s := range stages[1:] {
		total += (s.Noise - 1.0) / cumulativeGain
		cumulativeGain *= s.Gain
	}
	return total
}

// CascadeFigure returns the total noise figure in dB of a chain of stages given as noise figure
// in dB and gain in dB. An empty chain has noise figure 0 dB and a single stage keeps its own
// noise figure.
func CascadeFigure(stages []Stage) float64 {
	switch len(stages) {
	case 0:
		return 0.0
	case 1:
		return stages[0].Noise
	}

	linear := make([]Stage, len(stages))
	for i, s := range stages {
		linear[i] = Stage{Noise: FactorFromFigure(s.Noise), Gain: power.DbToLinear(s.Gain)}
	}
	return FigureFromFactor(CascadeFactor(linear))
}

// CascadeTemperature returns the total noise temperature in Kelvin of a chain of stages given as
// noise temperature in Kelvin and linear gain:
//
//	Te = Te1 + Te2/G1 + Te3/(G1*G2) + ...
//
// An empty chain has noise temperature 0 K.
func CascadeTemperature(stages []Stage) float64 {
	if len(stages) == 0 {
		return 0.0
	}

	total := stages[0].Noise
	cumulativeGain := stages[0].Gain
	for _, s := range stages[1:] {
		total += s.Noise / cumulativeGain
		cumulativeGain *= s.Gain
	}
	return total
}
