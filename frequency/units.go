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

package frequency

import (
	"math"
	"strings"
)

// Unit is a frequency unit.
type Unit int

const (
	Hz Unit = iota
	KHz
	MHz
	GHz
	THz
)

var unitNames = []string{"Hz", "kHz", "MHz", "GHz", "THz"}

// Units lists all frequency units from smallest to largest.
var Units = []Unit{Hz, KHz, MHz, GHz, THz}

var conversions = map[[2]Unit]func(float64) float64{
	{Hz, KHz}:  HzToKhz,
	{Hz, MHz}:  HzToMhz,
	{Hz, GHz}:  HzToGhz,
	{Hz, THz}:  HzToThz,
	{KHz, Hz}:  KhzToHz,
	{KHz, MHz}: KhzToMhz,
	{KHz, GHz}: KhzToGhz,
	{KHz, THz}: KhzToThz,
	{MHz, Hz}:  MhzToHz,
	{MHz, KHz}: MhzToKhz,
	{MHz, GHz}: MhzToGhz,
	{MHz, THz}: MhzToThz,
	{GHz, Hz}:  GhzToHz,
	{GHz, KHz}: GhzToKhz,
	{GHz, MHz}: GhzToMhz,
	{GHz, THz}: GhzToThz,
	{THz, Hz}:  ThzToHz,
	{THz, KHz}: ThzToKhz,
	{THz, MHz}: ThzToMhz,
	{THz, GHz}: ThzToGhz,
}

func (u Unit) String() string {
	if u < Hz || u > THz {
		return "?"
	}
	return unitNames[u]
}

// ParseUnit parses a unit name, case-insensitive ("mhz", "MHz").
func ParseUnit(s string) (Unit, bool) {
	for i, name := range unitNames {
		if strings.EqualFold(s, name) {
			return Unit(i), true
		}
	}
	return Hz, false
}

// Convert scales value from one unit to another. Converting a unit to itself returns value.
// Units outside Hz..THz yield NaN.
func Convert(value float64, from Unit, to Unit) float64 {
	if from < Hz || from > THz || to < Hz || to > THz {
		return math.NaN()
	}
	if from == to {
		return value
	}
	conv, ok := conversions[[2]Unit{from, to}]
	if !ok {
		return math.NaN()
	}
	return conv(value)
}
