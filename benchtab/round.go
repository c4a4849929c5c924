// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"math"
	"strconv"
	"strings"
)

// exact is the magnitude above which every float64 is an integer.
const exact = 1 << 52

// Round2 rounds x to two decimal places, half away from zero.
//
// Rounding is done on the shortest decimal representation of x, so
// that a value printed as 1.005 rounds to 1.01 even though the nearest
// float64 is slightly below 1.005. NaN and infinities are returned
// unchanged.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= exact {
		return x
	}
	return shift(math.Round(shift(x, 2)), -2)
}

// shift multiplies x by 10^n by rewriting the exponent of its shortest
// decimal form, which avoids the binary error of x * 100.
func shift(x float64, n int) float64 {
	mant, exp, _ := strings.Cut(strconv.FormatFloat(x, 'e', -1, 64), "e")
	e, err := strconv.Atoi(exp)
	if err != nil {
		panic("benchtab: bad exponent in " + exp)
	}
	v, err := strconv.ParseFloat(mant+"e"+strconv.Itoa(e+n), 64)
	if err != nil {
		panic(err)
	}
	return v
}
