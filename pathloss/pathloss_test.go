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

package pathloss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeSpace(t *testing.T) {
	assert.InDelta(t, 92.4478, FreeSpace(1000, 1e9), 1e-4)
	// doubling the distance or the frequency adds 6 dB
	assert.InDelta(t, 6.0206, FreeSpace(2000, 1e9)-FreeSpace(1000, 1e9), 1e-4)
	assert.InDelta(t, 6.0206, FreeSpace(1000, 2e9)-FreeSpace(1000, 1e9), 1e-4)
}

func TestFreeSpaceModelMatchesFormula(t *testing.T) {
	m, err := NewModel("fspl", 2.4e9)
	assert.Nil(t, err)
	for _, d := range []float64{0.5, 1, 10, 1234} {
		assert.InDelta(t, FreeSpace(d, 2.4e9), m.Loss(d), 1e-9)
	}
}

func TestItuModel(t *testing.T) {
	m, err := NewModel("ITU", 2.4e9)
	assert.Nil(t, err)
	assert.Equal(t, "itu", m.Name)
	assert.InDelta(t, 69.6042, m.Loss(10), 1e-4)
	assert.InDelta(t, 0.0-69.6042, m.Rssi(0, 10), 1e-4)
}

func TestIndoorHotspotModel(t *testing.T) {
	m, err := NewModel("inh", 2.4e9)
	assert.Nil(t, err)
	// NLOS term dominates at 10 m, LOS term at 2 m
	assert.InDelta(t, 65.0673, m.Loss(10), 1e-4)
	assert.InDelta(t, 45.2120, m.Loss(2), 1e-4)
}

func TestLossEdgeCases(t *testing.T) {
	m, err := NewModel("itu", 2.4e9)
	assert.Nil(t, err)
	assert.Equal(t, 0.0, m.Loss(0))
	assert.Equal(t, 0.0, m.Loss(MinDistance/2))
	// the fixed term would go negative this close
	assert.Equal(t, 0.0, m.Loss(0.02))
}

func TestNewModelErrors(t *testing.T) {
	_, err := NewModel("hata", 900e6)
	assert.NotNil(t, err)
	_, err = NewModel("fspl", 0)
	assert.NotNil(t, err)
	_, err = NewModel("fspl", -1)
	assert.NotNil(t, err)
}
