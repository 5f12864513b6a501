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

// Package budget computes the gain, noise and compression budget of a receive chain described
// in a YAML file.
package budget

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openthread/ot-rfconv/constants"
	"github.com/openthread/ot-rfconv/noise"
	"github.com/openthread/ot-rfconv/p1db"
	"github.com/openthread/ot-rfconv/power"
)

// Stage is one stage of a chain. A stage without a noise figure is a matched passive device
// whose noise figure follows from its loss and physical temperature.
type Stage struct {
	Name        string   `yaml:"name"`
	Gain        float64  `yaml:"gain"`                  // dB
	NoiseFigure *float64 `yaml:"nf,omitempty"`          // dB
	OutputP1dB  *float64 `yaml:"op1db,omitempty"`       // dBm
	Temperature *float64 `yaml:"temperature,omitempty"` // K, physical temperature of a passive stage
}

// Chain is a receive chain, optionally fed by an antenna.
type Chain struct {
	Name               string   `yaml:"name"`
	Bandwidth          *float64 `yaml:"bandwidth,omitempty"`           // Hz
	AntennaGain        *float64 `yaml:"antenna-gain,omitempty"`        // dBi
	AntennaTemperature *float64 `yaml:"antenna-temperature,omitempty"` // K
	Stages             []Stage  `yaml:"stages"`
}

// LoadChain reads a chain from a YAML file.
func LoadChain(path string) (*Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read chain file %s", path)
	}
	chain, err := ParseChain(data)
	if err != nil {
		return nil, errors.Wrapf(err, "chain file %s", path)
	}
	return chain, nil
}

// ParseChain parses and validates a chain in YAML format. Unknown keys are rejected.
func ParseChain(data []byte) (*Chain, error) {
	chain := &Chain{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(chain); err != nil {
		return nil, errors.Wrap(err, "parse chain")
	}
	for i := range chain.Stages {
		if chain.Stages[i].Name == "" {
			chain.Stages[i].Name = fmt.Sprintf("stage-%d", i+1)
		}
	}
	if err := chain.Validate(); err != nil {
		return nil, err
	}
	return chain, nil
}

// Validate checks that the chain can be analyzed.
func (c *Chain) Validate() error {
	if len(c.Stages) == 0 {
		return errors.Errorf("chain %q has no stages", c.Name)
	}
	if c.Bandwidth != nil && !(*c.Bandwidth > 0) {
		return errors.Errorf("bandwidth must be positive, got %v", *c.Bandwidth)
	}
	if c.AntennaGain != nil {
		if c.AntennaTemperature == nil {
			return errors.Errorf("antenna-gain needs antenna-temperature")
		}
		if !isFinite(*c.AntennaGain) {
			return errors.Errorf("invalid antenna-gain %v", *c.AntennaGain)
		}
	}
	if c.AntennaTemperature != nil && !(*c.AntennaTemperature >= 0) {
		return errors.Errorf("antenna-temperature must not be negative, got %v", *c.AntennaTemperature)
	}

	for _, s := range c.Stages {
		if !isFinite(s.Gain) {
			return errors.Errorf("stage %q: invalid gain %v", s.Name, s.Gain)
		}
		if s.NoiseFigure != nil && !isFinite(*s.NoiseFigure) {
			return errors.Errorf("stage %q: invalid nf %v", s.Name, *s.NoiseFigure)
		}
		if s.OutputP1dB != nil && math.IsNaN(*s.OutputP1dB) {
			return errors.Errorf("stage %q: invalid op1db %v", s.Name, *s.OutputP1dB)
		}
		if s.Temperature != nil && !(*s.Temperature >= 0) {
			return errors.Errorf("stage %q: temperature must not be negative, got %v", s.Name, *s.Temperature)
		}
		if s.IsPassive() && s.Gain > 0 {
			return errors.Errorf("stage %q: passive stage (no nf) needs gain <= 0 dB, got %v", s.Name, s.Gain)
		}
	}
	return nil
}

// IsPassive returns true for a stage without a declared noise figure.
func (s *Stage) IsPassive() bool {
	return s.NoiseFigure == nil
}

// Figure returns the noise figure of the stage in dB, deriving it from loss and physical
// temperature for a passive stage.
func (s *Stage) Figure() float64 {
	if !s.IsPassive() {
		return *s.NoiseFigure
	}
	temp := constants.ReferenceTemperature
	if s.Temperature != nil {
		temp = *s.Temperature
	}
	return noise.FigureFromFactor(noise.PassiveFactor(power.DbToLinear(s.Gain), temp))
}

// NoiseStages returns the stages as (NF dB, gain dB) pairs for noise.CascadeFigure.
func (c *Chain) NoiseStages() []noise.Stage {
	stages := make([]noise.Stage, len(c.Stages))
	for i := range c.Stages {
		stages[i] = noise.Stage{Noise: c.Stages[i].Figure(), Gain: c.Stages[i].Gain}
	}
	return stages
}

// TemperatureStages returns the stages as (Te K, linear gain) pairs for noise.CascadeTemperature.
func (c *Chain) TemperatureStages() []noise.Stage {
	stages := make([]noise.Stage, len(c.Stages))
	for i := range c.Stages {
		stages[i] = noise.Stage{
			Noise: noise.TemperatureFromFigure(c.Stages[i].Figure()),
			Gain:  power.DbToLinear(c.Stages[i].Gain),
		}
	}
	return stages
}

// CumulativeCompression returns the output P1dB (dBm) of the chain after each stage. A stage
// with op1db is combined with p1db.CascadeOutput; a stage without op1db does not compress and
// refers the running compression point to its output by its gain alone. The chain does not
// compress (+Inf) before its first compressing stage.
func (c *Chain) CumulativeCompression() []float64 {
	cumulative := make([]float64, len(c.Stages))
	running := math.Inf(1)
	for i, s := range c.Stages {
		switch {
		case s.OutputP1dB == nil:
			running += s.Gain
		case math.IsInf(running, 1):
			running = *s.OutputP1dB
		default:
			running = p1db.CascadeOutput(running, *s.OutputP1dB, s.Gain)
		}
		cumulative[i] = running
	}
	return cumulative
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
