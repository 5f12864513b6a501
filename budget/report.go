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

package budget

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/openthread/ot-rfconv/constants"
	"github.com/openthread/ot-rfconv/logger"
	"github.com/openthread/ot-rfconv/noise"
	"github.com/openthread/ot-rfconv/p1db"
)

// reportDecimals is the rounding applied to every value of a Report.
const reportDecimals = 2

// StageReport holds the budget up to and including one stage.
type StageReport struct {
	Name                  string  `yaml:"name"`
	Gain                  float64 `yaml:"gain"`
	NoiseFigure           float64 `yaml:"nf"`
	CumulativeGain        float64 `yaml:"cum-gain"`
	CumulativeNoiseFigure float64 `yaml:"cum-nf"`
	CumulativeTemperature float64 `yaml:"cum-te"`
	CumulativeOutputP1dB  float64 `yaml:"cum-op1db"`
}

// Report is the budget of a whole chain. NoiseFloor is only set when the chain has a bandwidth,
// SystemTemperature and GOverT only when it has an antenna.
type Report struct {
	Name              string        `yaml:"name"`
	Stages            []StageReport `yaml:"stages"`
	Gain              float64       `yaml:"gain"`
	NoiseFigure       float64       `yaml:"nf"`
	NoiseTemperature  float64       `yaml:"te"`
	OutputP1dB        float64       `yaml:"op1db"`
	InputP1dB         float64       `yaml:"ip1db"`
	NoiseFloor        *float64      `yaml:"noise-floor,omitempty"`
	SystemTemperature *float64      `yaml:"tsys,omitempty"`
	GOverT            *float64      `yaml:"g-over-t,omitempty"`
}

// Analyze computes the budget of a chain.
func Analyze(chain *Chain) (*Report, error) {
	if err := chain.Validate(); err != nil {
		return nil, err
	}

	noiseStages := chain.NoiseStages()
	tempStages := chain.TemperatureStages()
	compression := chain.CumulativeCompression()

	gains := make([]float64, len(chain.Stages))
	for i := range chain.Stages {
		gains[i] = chain.Stages[i].Gain
	}
	cumGains := floats.CumSum(make([]float64, len(gains)), gains)

	report := &Report{
		Name:   chain.Name,
		Stages: make([]StageReport, 0, len(chain.Stages)),
	}
	for i := range chain.Stages {
		sr := StageReport{
			Name:                  chain.Stages[i].Name,
			Gain:                  round(chain.Stages[i].Gain),
			NoiseFigure:           round(noiseStages[i].Noise),
			CumulativeGain:        round(cumGains[i]),
			CumulativeNoiseFigure: round(noise.CascadeFigure(noiseStages[:i+1])),
			CumulativeTemperature: round(noise.CascadeTemperature(tempStages[:i+1])),
			CumulativeOutputP1dB:  round(compression[i]),
		}
		logger.Debugf("budget %s: %s nf=%v cum-nf=%v cum-op1db=%v", chain.Name, sr.Name, sr.NoiseFigure,
			sr.CumulativeNoiseFigure, sr.CumulativeOutputP1dB)
		report.Stages = append(report.Stages, sr)
	}
	logger.AssertEqual(len(chain.Stages), len(report.Stages))

	totalGain := cumGains[len(cumGains)-1]
	totalNf := noise.CascadeFigure(noiseStages)
	totalTe := noise.CascadeTemperature(tempStages)
	totalOp1dB := compression[len(compression)-1]

	report.Gain = round(totalGain)
	report.NoiseFigure = round(totalNf)
	report.NoiseTemperature = round(totalTe)
	report.OutputP1dB = round(totalOp1dB)
	report.InputP1dB = round(p1db.OutputToInputDb(totalOp1dB, totalGain))

	if chain.Bandwidth != nil {
		floor := round(noise.PowerDbm(constants.ReferenceTemperature, *chain.Bandwidth) + totalNf)
		report.NoiseFloor = &floor
	}
	if chain.AntennaTemperature != nil {
		tsys := *chain.AntennaTemperature + totalTe
		roundedTsys := round(tsys)
		report.SystemTemperature = &roundedTsys
		if chain.AntennaGain != nil {
			gt := round(noise.GOverT(*chain.AntennaGain, tsys))
			report.GOverT = &gt
		}
	}
	return report, nil
}

func round(v float64) float64 {
	return scalar.Round(v, reportDecimals)
}
