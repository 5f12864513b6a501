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

// Package power converts between absolute power levels (W, mW, dBm, dBW) and between
// dB and linear power ratios.
//
// Logarithmic conversions of zero return -Inf and of negative values return NaN. Inputs are
// not validated.
package power

import "math"

// WattsToDbm converts a power in watts to dBm.
func WattsToDbm(watts float64) float64 {
	return 10.0 * (math.Log10(watts) + 3.0)
}

// DbmToWatts converts a power in dBm to watts.
func DbmToWatts(dbm float64) float64 {
	return math.Pow(10, (dbm-30.0)/10.0)
}

// MilliwattsToDbm converts a power in milliwatts to dBm.
func MilliwattsToDbm(mw float64) float64 {
	return 10.0 * math.Log10(mw)
}

// DbmToMilliwatts converts a power in dBm to milliwatts.
func DbmToMilliwatts(dbm float64) float64 {
	return math.Pow(10, dbm/10.0)
}

// WattsToDbw converts a power in watts to dBW.
func WattsToDbw(watts float64) float64 {
	return 10.0 * math.Log10(watts)
}

// DbwToWatts converts a power in dBW to watts.
func DbwToWatts(dbw float64) float64 {
	return math.Pow(10, dbw/10.0)
}

// MilliwattsToDbw converts a power in milliwatts to dBW.
func MilliwattsToDbw(mw float64) float64 {
	return 10.0 * math.Log10(mw/1000.0)
}

// DbwToMilliwatts converts a power in dBW to milliwatts.
func DbwToMilliwatts(dbw float64) float64 {
	return math.Pow(10, dbw/10.0) * 1000.0
}

// DbmToDbw converts dBm to dBW. Both are log levels, so this is a fixed offset.
func DbmToDbw(dbm float64) float64 {
	return dbm - 30.0
}

// DbwToDbm converts dBW to dBm.
func DbwToDbm(dbw float64) float64 {
	return dbw + 30.0
}

// DbToLinear converts a power ratio in dB to a linear ratio.
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/10.0)
}

// LinearToDb converts a linear power ratio to dB.
func LinearToDb(ratio float64) float64 {
	return 10.0 * math.Log10(ratio)
}

// AddDbm returns the power sum of two signal levels given in dBm.
func AddDbm(p1 float64, p2 float64) float64 {
	return 10.0 * math.Log10(math.Pow(10, p1/10.0)+math.Pow(10, p2/10.0))
}
