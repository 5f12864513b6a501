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

package cli

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle"
	"github.com/pkg/errors"
)

// Number is a real number in the command line. It accepts a leading minus sign, decimals and
// exponents, e.g. -3, 2.5 or 1e-3.
type Number float64

// Capture implements participle.Capture.
func (n *Number) Capture(values []string) error {
	v, err := strconv.ParseFloat(strings.Join(values, ""), 64)
	if err != nil {
		return errors.Wrapf(err, "invalid number %q", strings.Join(values, ""))
	}
	*n = Number(v)
	return nil
}

// captureUnit matches a unit keyword case-insensitively and returns its lower case form.
func captureUnit(values []string, kind string, allowed ...string) (string, error) {
	word := strings.Join(values, "")
	for _, a := range allowed {
		if strings.EqualFold(word, a) {
			return a, nil
		}
	}
	return "", errors.Errorf("unknown %s unit %q", kind, word)
}

// PowerUnit is one of w, mw, dbm or dbw.
type PowerUnit string

// Capture implements participle.Capture.
func (u *PowerUnit) Capture(values []string) error {
	s, err := captureUnit(values, "power", "w", "mw", "dbm", "dbw")
	*u = PowerUnit(s)
	return err
}

// FreqUnit is one of hz, khz, mhz, ghz, thz or m (wavelength in meters).
type FreqUnit string

// Capture implements participle.Capture.
func (u *FreqUnit) Capture(values []string) error {
	s, err := captureUnit(values, "frequency", "hz", "khz", "mhz", "ghz", "thz", "m")
	*u = FreqUnit(s)
	return err
}

// RatioUnit is db or lin.
type RatioUnit string

// Capture implements participle.Capture.
func (u *RatioUnit) Capture(values []string) error {
	s, err := captureUnit(values, "ratio", "db", "lin")
	*u = RatioUnit(s)
	return err
}

// NoiseUnit is db, factor or k.
type NoiseUnit string

// Capture implements participle.Capture.
func (u *NoiseUnit) Capture(values []string) error {
	s, err := captureUnit(values, "noise", "db", "factor", "k")
	*u = NoiseUnit(s)
	return err
}

// noinspection GoStructTag
type Command struct {
	Budget    *BudgetCmd    `  @@` //nolint
	Cascade   *CascadeCmd   `| @@` //nolint
	Exit      *ExitCmd      `| @@` //nolint
	Freq      *FreqCmd      `| @@` //nolint
	Gt        *GtCmd        `| @@` //nolint
	Help      *HelpCmd      `| @@` //nolint
	Ktb       *KtbCmd       `| @@` //nolint
	LogLevel  *LogLevelCmd  `| @@` //nolint
	N0        *N0Cmd        `| @@` //nolint
	Noise     *NoiseCmd     `| @@` //nolint
	P1db      *P1dbCmd      `| @@` //nolint
	Passive   *PassiveCmd   `| @@` //nolint
	PathLoss  *PathLossCmd  `| @@` //nolint
	Power     *PowerCmd     `| @@` //nolint
	Precision *PrecisionCmd `| @@` //nolint
	Ratio     *RatioCmd     `| @@` //nolint
	Sum       *SumCmd       `| @@` //nolint
}

// noinspection GoStructTag
type PowerCmd struct {
	Cmd   struct{}   `"power"`             //nolint
	Value Number     `@("-"? (Float|Int))` //nolint
	From  PowerUnit  `@Ident`              //nolint
	To    *PowerUnit `[ @Ident ]`          //nolint
}

// noinspection GoStructTag
type RatioCmd struct {
	Cmd   struct{}  `"ratio"`             //nolint
	Value Number    `@("-"? (Float|Int))` //nolint
	From  RatioUnit `@Ident`              //nolint
}

// noinspection GoStructTag
type PowerArg struct {
	Value Number `@("-"? (Float|Int))` //nolint
}

// noinspection GoStructTag
type SumCmd struct {
	Cmd    struct{}   `"sum"`   //nolint
	Powers []PowerArg `( @@ )+` //nolint
}

// noinspection GoStructTag
type FreqCmd struct {
	Cmd   struct{}  `"freq"`              //nolint
	Value Number    `@("-"? (Float|Int))` //nolint
	From  FreqUnit  `@Ident`              //nolint
	To    *FreqUnit `[ @Ident ]`          //nolint
}

// noinspection GoStructTag
type NoiseCmd struct {
	Cmd   struct{}  `"noise"`             //nolint
	Value Number    `@("-"? (Float|Int))` //nolint
	From  NoiseUnit `@Ident`              //nolint
}

// noinspection GoStructTag
type PassiveCmd struct {
	Cmd         struct{} `"passive"`               //nolint
	Loss        Number   `@("-"? (Float|Int))`     //nolint
	Temperature *Number  `[ @("-"? (Float|Int)) ]` //nolint
}

// noinspection GoStructTag
type PathLossCmd struct {
	Cmd      struct{} `"pathloss"`                   //nolint
	Distance Number   `@("-"? (Float|Int))`          //nolint
	Freq     Number   `@("-"? (Float|Int))`          //nolint
	Unit     FreqUnit `@Ident`                       //nolint
	Model    string   `[ @("fspl"|"itu"|"inh") ]`    //nolint
	TxPower  *Number  `[ "tx" @("-"? (Float|Int)) ]` //nolint
}

// noinspection GoStructTag
type KtbCmd struct {
	Cmd         struct{} `"ktb"`               //nolint
	Temperature Number   `@("-"? (Float|Int))` //nolint
	Bandwidth   Number   `@("-"? (Float|Int))` //nolint
}

// noinspection GoStructTag
type N0Cmd struct {
	Cmd         struct{} `"n0"`                    //nolint
	Temperature *Number  `[ @("-"? (Float|Int)) ]` //nolint
}

// noinspection GoStructTag
type GtCmd struct {
	Cmd               struct{} `"gt"`                //nolint
	Gain              Number   `@("-"? (Float|Int))` //nolint
	SystemTemperature Number   `@("-"? (Float|Int))` //nolint
}

// noinspection GoStructTag
type P1dbCmd struct {
	Cmd   struct{} `"p1db"`              //nolint
	Side  string   `@("in"|"out")`       //nolint
	Value Number   `@("-"? (Float|Int))` //nolint
	Gain  Number   `@("-"? (Float|Int))` //nolint
}

// noinspection GoStructTag
type StageArg struct {
	Value Number `@("-"? (Float|Int))` //nolint
	Gain  Number `@("-"? (Float|Int))` //nolint
}

// noinspection GoStructTag
type CascadeCmd struct {
	Cmd    struct{}   `"cascade"`                      //nolint
	Kind   string     `@("nf"|"factor"|"temp"|"p1db")` //nolint
	Stages []StageArg `( @@ )+`                        //nolint
}

// noinspection GoStructTag
type BudgetCmd struct {
	Cmd  struct{} `"budget"` //nolint
	Path string   `@String`  //nolint
}

// noinspection GoStructTag
type PrecisionCmd struct {
	Cmd    struct{} `"precision"` //nolint
	Digits *int     `[ @Int ]`    //nolint
}

// noinspection GoStructTag
type LogLevelCmd struct {
	Cmd   struct{} `"log"`                                                                            //nolint
	Level string   `[@( "trace"|"debug"|"info"|"warn"|"error"|"off"|"default"|"T"|"D"|"I"|"W"|"E" )]` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`       //nolint
	HelpTopic string   `[ (@Ident) ]` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	return commandParser.ParseBytes(b, cmd)
}

// unquote removes the quotes around a string argument, if the lexer left them in place.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}
