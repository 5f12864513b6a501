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

// Package noise converts between the equivalent noise descriptors of a device (noise factor F,
// noise figure NF in dB and noise temperature Te in Kelvin), computes thermal noise power and
// combines cascaded stages with the Friis formula.
//
// Noise temperatures are referenced to T0 = constants.ReferenceTemperature (290 K).
package noise

import (
	"math"

	"github.com/openthread/ot-rfconv/constants"
	"github.com/openthread/ot-rfconv/power"
)

// FigureFromFactor converts a linear noise factor to a noise figure in dB.
func FigureFromFactor(factor float64) float64 {
	return 10.0 * math.Log10(factor)
}

// FactorFromFigure converts a noise figure in dB to a linear noise factor.
func FactorFromFigure(figure float64) float64 {
	return math.Pow(10, figure/10.0)
}

// TemperatureFromFactor converts a noise factor to a noise temperature in Kelvin.
func TemperatureFromFactor(factor float64) float64 {
	return constants.ReferenceTemperature * (factor - 1.0)
}

// FactorFromTemperature converts a noise temperature in Kelvin to a noise factor.
func FactorFromTemperature(temperature float64) float64 {
	return 1.0 + temperature/constants.ReferenceTemperature
}

// TemperatureFromFigure converts a noise figure in dB to a noise temperature in Kelvin.
func TemperatureFromFigure(figure float64) float64 {
	return TemperatureFromFactor(FactorFromFigure(figure))
}

// FigureFromTemperature converts a noise temperature in Kelvin to a noise figure in dB.
func FigureFromTemperature(temperature float64) float64 {
	return FigureFromFactor(FactorFromTemperature(temperature))
}

// PowerFromBandwidth returns the thermal noise power kTB in watts, for a temperature in Kelvin
// and a bandwidth in Hz.
func PowerFromBandwidth(temperature float64, bandwidth float64) float64 {
	return constants.Boltzmann * temperature * bandwidth
}

// PowerDbm returns the thermal noise power kTB in dBm.
func PowerDbm(temperature float64, bandwidth float64) float64 {
	return power.WattsToDbm(PowerFromBandwidth(temperature, bandwidth))
}

// DensityDbmPerHz returns the noise power spectral density N0 = kT in dBm/Hz.
// At 290 K this is about -174 dBm/Hz.
func DensityDbmPerHz(temperature float64) float64 {
	return 10.0 * math.Log10(constants.Boltzmann*temperature*1000.0)
}

// GOverT returns the receive figure of merit G/T in dB/K, for an antenna gain in dBi and a
// system noise temperature in Kelvin.
func GOverT(gainDbi float64, systemTemperature float64) float64 {
	return gainDbi - 10.0*math.Log10(systemTemperature)
}

// PassiveFactor returns the noise factor of a matched lossy passive device (cable, filter,
// attenuator) with linear gain <= 1 at the given physical temperature in Kelvin:
// F = 1 + (1/G - 1) * Tp/T0. At T0 the noise factor equals the loss.
func PassiveFactor(gain float64, physicalTemperature float64) float64 {
	return 1.0 + (1.0/gain-1.0)*physicalTemperature/constants.ReferenceTemperature
}
