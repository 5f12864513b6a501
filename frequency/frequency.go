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

// Package frequency scales frequencies between Hz, kHz, MHz, GHz and THz, and converts
// between frequency and free-space wavelength.
package frequency

import "github.com/openthread/ot-rfconv/constants"

// ToWavelength converts a frequency in Hz to its free-space wavelength in meters.
// A zero frequency gives +Inf.
func ToWavelength(hz float64) float64 {
	return constants.SpeedOfLight / hz
}

// FromWavelength converts a free-space wavelength in meters to a frequency in Hz.
func FromWavelength(meters float64) float64 {
	return constants.SpeedOfLight / meters
}

// ThzToGhz converts THz to GHz.
func ThzToGhz(thz float64) float64 {
	return thz * 1e3
}

// ThzToMhz converts THz to MHz.
func ThzToMhz(thz float64) float64 {
	return thz * 1e6
}

// ThzToKhz converts THz to kHz.
func ThzToKhz(thz float64) float64 {
	return thz * 1e9
}

// ThzToHz converts THz to Hz.
func ThzToHz(thz float64) float64 {
	return thz * 1e12
}

// GhzToThz converts GHz to THz.
func GhzToThz(ghz float64) float64 {
	return ghz / 1e3
}

// GhzToMhz converts GHz to MHz.
func GhzToMhz(ghz float64) float64 {
	return ghz * 1e3
}

// GhzToKhz converts GHz to kHz.
func GhzToKhz(ghz float64) float64 {
	return ghz * 1e6
}

// GhzToHz converts GHz to Hz.
func GhzToHz(ghz float64) float64 {
	return ghz * 1e9
}

// MhzToThz converts MHz to THz.
func MhzToThz(mhz float64) float64 {
	return mhz / 1e6
}

// MhzToGhz converts MHz to GHz.
func MhzToGhz(mhz float64) float64 {
	return mhz / 1e3
}

// MhzToKhz converts MHz to kHz.
func MhzToKhz(mhz float64) float64 {
	return mhz * 1e3
}

// MhzToHz converts MHz to Hz.
func MhzToHz(mhz float64) float64 {
	return mhz * 1e6
}

// KhzToThz converts kHz to THz.
func KhzToThz(khz float64) float64 {
	return khz / 1e9
}

// KhzToGhz converts kHz to GHz.
func KhzToGhz(khz float64) float64 {
	return khz / 1e6
}

// KhzToMhz converts kHz to MHz.
func KhzToMhz(khz float64) float64 {
	return khz / 1e3
}

// KhzToHz converts kHz to Hz.
func KhzToHz(khz float64) float64 {
	return khz * 1e3
}

// HzToThz converts Hz to THz.
func HzToThz(hz float64) float64 {
	return hz / 1e12
}

// HzToGhz converts Hz to GHz.
func HzToGhz(hz float64) float64 {
	return hz / 1e9
}

// HzToMhz converts Hz to MHz.
func HzToMhz(hz float64) float64 {
	return hz / 1e6
}

// HzToKhz converts Hz to kHz.
func HzToKhz(hz float64) float64 {
	return hz / 1e3
}
