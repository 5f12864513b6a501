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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openthread/ot-rfconv/noise"
	"github.com/openthread/ot-rfconv/p1db"
)

var testChainYaml = `
name: l-band
stages:
  - name: lna
    nf: 1.0
    gain: 30
  - gain: -3
    temperature: 77
  - name: if-amp
    nf: 4
    gain: 20
    op1db: 18
`

func TestLoadChain(t *testing.T) {
	chain, err := LoadChain("testdata/ku_rx.yaml")
	assert.Nil(t, err)
	assert.Equal(t, "ku-band receiver", chain.Name)
	assert.Equal(t, 3, len(chain.Stages))
	assert.Equal(t, 1e6, *chain.Bandwidth)
	assert.True(t, chain.Stages[1].IsPassive())
	assert.Nil(t, chain.Stages[1].OutputP1dB)

	_, err = LoadChain("testdata/missing.yaml")
	assert.NotNil(t, err)
}

func TestAnalyzeKuReceiver(t *testing.T) {
	chain, err := LoadChain("testdata/ku_rx.yaml")
	assert.Nil(t, err)

	report, err := Analyze(chain)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(report.Stages))

	assert.Equal(t, 1.0, report.Stages[1].NoiseFigure)
	assert.Equal(t, []float64{20, 19, 12}, []float64{
		report.Stages[0].CumulativeGain, report.Stages[1].CumulativeGain, report.Stages[2].CumulativeGain})
	assert.Equal(t, []float64{0.5, 0.51, 0.76}, []float64{
		report.Stages[0].CumulativeNoiseFigure, report.Stages[1].CumulativeNoiseFigure, report.Stages[2].CumulativeNoiseFigure})
	assert.Equal(t, []float64{35.39, 36.14, 55.52}, []float64{
		report.Stages[0].CumulativeTemperature, report.Stages[1].CumulativeTemperature, report.Stages[2].CumulativeTemperature})
	assert.Equal(t, []float64{15, 14, 9.67}, []float64{
		report.Stages[0].CumulativeOutputP1dB, report.Stages[1].CumulativeOutputP1dB, report.Stages[2].CumulativeOutputP1dB})

	assert.Equal(t, 12.0, report.Gain)
	assert.Equal(t, 0.76, report.NoiseFigure)
	assert.Equal(t, 55.52, report.NoiseTemperature)
	assert.Equal(t, 9.67, report.OutputP1dB)
	assert.Equal(t, -1.33, report.InputP1dB)
	assert.Equal(t, -113.21, *report.NoiseFloor)
	assert.Equal(t, 105.52, *report.SystemTemperature)
	assert.Equal(t, 19.77, *report.GOverT)
}

func TestAnalyzeMatchesCascade(t *testing.T) {
	chain, err := ParseChain([]byte(testChainYaml))
	assert.Nil(t, err)
	assert.Equal(t, "stage-2", chain.Stages[1].Name)

	report, err := Analyze(chain)
	assert.Nil(t, err)
	assert.InDelta(t, noise.CascadeFigure(chain.NoiseStages()), report.NoiseFigure, 0.005)
	assert.Equal(t, 47.0, report.Gain)
	assert.Nil(t, report.NoiseFloor)
	assert.Nil(t, report.SystemTemperature)
	assert.Nil(t, report.GOverT)

	// only the last stage compresses; the stages before it do not limit the chain
	assert.True(t, math.IsInf(report.Stages[0].CumulativeOutputP1dB, 1))
	assert.True(t, math.IsInf(report.Stages[1].CumulativeOutputP1dB, 1))
	assert.Equal(t, 18.0, report.OutputP1dB)
	assert.Equal(t, -28.0, report.InputP1dB)
}

func TestCompressionThroughNonCompressingStages(t *testing.T) {
	// the LNA alone has IP1dB = 15 - (20 - 1) = -4 dBm
	lnaPad := `
stages:
  - {name: lna, nf: 1, gain: 20, op1db: 15}
  - {name: pad, gain: -10}
`
	chain, err := ParseChain([]byte(lnaPad))
	assert.Nil(t, err)
	report, err := Analyze(chain)
	assert.Nil(t, err)
	assert.Equal(t, 5.0, report.Stages[1].CumulativeOutputP1dB)
	assert.Equal(t, 5.0, report.OutputP1dB)
	assert.Equal(t, -4.0, report.InputP1dB)

	lnaAmp := `
stages:
  - {name: lna, nf: 1, gain: 20, op1db: 15}
  - {name: amp, nf: 3, gain: 30}
`
	chain, err = ParseChain([]byte(lnaAmp))
	assert.Nil(t, err)
	report, err = Analyze(chain)
	assert.Nil(t, err)
	assert.Equal(t, 45.0, report.OutputP1dB)
	assert.Equal(t, -4.0, report.InputP1dB)
}

func TestCumulativeCompression(t *testing.T) {
	op := func(v float64) *float64 { return &v }
	nf := op(2)
	chain := &Chain{Stages: []Stage{
		{Name: "amp", NoiseFigure: nf, Gain: 10},
		{Name: "driver", NoiseFigure: nf, Gain: 10, OutputP1dB: op(18)},
		{Name: "cable", Gain: -3},
		{Name: "pa", NoiseFigure: nf, Gain: 30, OutputP1dB: op(34)},
	}}

	cum := chain.CumulativeCompression()
	assert.True(t, math.IsInf(cum[0], 1))
	assert.Equal(t, 18.0, cum[1])
	assert.Equal(t, 15.0, cum[2])
	assert.InDelta(t, p1db.CascadeOutput(15, 34, 30), cum[3], 1e-12)
}

func TestPassiveStageFigure(t *testing.T) {
	chain, err := ParseChain([]byte(testChainYaml))
	assert.Nil(t, err)

	// a 3 dB cable at 77 K adds less than 3 dB of noise
	nf := chain.Stages[1].Figure()
	assert.Greater(t, nf, 0.0)
	assert.Less(t, nf, 3.0)

	room := Stage{Name: "room", Gain: -3}
	assert.InDelta(t, 3.0, room.Figure(), 1e-9)
}

func TestParseChainErrors(t *testing.T) {
	bad := []string{
		`name: empty`,
		`stages: [{name: amp, nf: 1, gain: 10, color: red}]`,
		`stages: [{name: pad, gain: 3}]`,
		`stages: [{name: amp, nf: .nan, gain: 10}]`,
		`stages: [{name: cold, gain: -1, temperature: -4}]`,
		`{bandwidth: 0, stages: [{nf: 1, gain: 10}]}`,
		`{antenna-gain: 30, stages: [{nf: 1, gain: 10}]}`,
		`{antenna-gain: 30, antenna-temperature: -1, stages: [{nf: 1, gain: 10}]}`,
		`stages: not-a-list`,
	}
	for _, y := range bad {
		_, err := ParseChain([]byte(y))
		assert.NotNil(t, err, y)
	}
}

func TestAnalyzeRejectsInvalidChain(t *testing.T) {
	_, err := Analyze(&Chain{Name: "none"})
	assert.NotNil(t, err)
}
