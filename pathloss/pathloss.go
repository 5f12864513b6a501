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

// Package pathloss computes the propagation loss between two antennas: the free-space loss and
// the log-distance indoor models used to estimate an RSSI from a transmit power.
package pathloss

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/openthread/ot-rfconv/constants"
	"github.com/openthread/ot-rfconv/frequency"
)

// MinDistance is the distance in meters below which the log-distance models report no loss.
const MinDistance = 0.01

// FreeSpace returns the free-space path loss in dB between isotropic antennas at the given
// distance (m) and frequency (Hz): 20*log10(4*pi*d*f/c).
func FreeSpace(distance float64, hz float64) float64 {
	return 20.0 * math.Log10(4.0*math.Pi*distance*hz/constants.SpeedOfLight)
}

// Model is a log-distance path loss model, loss = ExponentDb*log10(d) + FixedLossDb, optionally
// bounded from below by a second, non-line-of-sight (NLOS) term.
type Model struct {
	Name            string
	ExponentDb      float64
	FixedLossDb     float64
	NlosExponentDb  float64 // zero when the model has no NLOS term
	NlosFixedLossDb float64
}

// ModelNames lists the names accepted by NewModel.
var ModelNames = []string{"fspl", "itu", "inh"}

// NewModel returns the named model at the given frequency (Hz):
//   - fspl: free space, 20 dB/decade.
//   - itu: ITU-R P.1238 indoor office, 30 dB/decade, 20*log10(f MHz) - 28 dB.
//   - inh: 3GPP TR 38.901 indoor hotspot (InH), LOS 17.3 dB/decade bounded by the NLOS term.
func NewModel(name string, hz float64) (*Model, error) {
	if !(hz > 0) {
		return nil, errors.Errorf("frequency must be positive, got %v", hz)
	}

	switch strings.ToLower(name) {
	case "fspl":
		return &Model{
			Name:        "fspl",
			ExponentDb:  20.0,
			FixedLossDb: FreeSpace(1.0, hz),
		}, nil
	case "itu":
		return &Model{
			Name:        "itu",
			ExponentDb:  30.0,
			FixedLossDb: 20.0*math.Log10(frequency.HzToMhz(hz)) - 28.0,
		}, nil
	case "inh":
		fGhz := frequency.HzToGhz(hz)
		return &Model{
			Name:            "inh",
			ExponentDb:      17.3,
			FixedLossDb:     32.4 + 20.0*math.Log10(fGhz),
			NlosExponentDb:  38.3,
			NlosFixedLossDb: 17.3 + 24.9*math.Log10(fGhz),
		}, nil
	default:
		return nil, errors.Errorf("unknown path loss model %q, use one of %v", name, ModelNames)
	}
}

// Loss returns the path loss in dB at the given distance (m). It is never negative and is zero
// closer than MinDistance.
func (m *Model) Loss(distance float64) float64 {
	if distance < MinDistance {
		return 0.0
	}

	loss := m.ExponentDb*math.Log10(distance) + m.FixedLossDb
	if m.NlosExponentDb > 0.0 {
		loss = math.Max(loss, m.NlosExponentDb*math.Log10(distance)+m.NlosFixedLossDb)
	}
	return math.Max(loss, 0.0)
}

// Rssi returns the received power (dBm) for a transmit power (dBm) after the model loss at the
// given distance.
func (m *Model) Rssi(txPower float64, distance float64) float64 {
	return txPower - m.Loss(distance)
}
