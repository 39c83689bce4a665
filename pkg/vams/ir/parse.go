// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ir

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SCALE_FACTORS maps the SI suffixes which can follow a real number onto
// their scale.
var SCALE_FACTORS = map[byte]float64{
	'T': 1e12, 'G': 1e9, 'M': 1e6, 'K': 1e3, 'k': 1e3,
	'm': 1e-3, 'u': 1e-6, 'n': 1e-9, 'p': 1e-12, 'f': 1e-15, 'a': 1e-18,
}

// ParseValue parses the source form of a literal.  This is either a quoted
// string, a decimal integer, or a real number with an optional exponent or
// scale factor (e.g. "1.5", "2e-3" or "10k").  Underscores within numbers are
// ignored.
func ParseValue(text string) (Value, error) {
	text = strings.TrimSpace(text)
	//
	if strings.HasPrefix(text, "\"") {
		s, err := strconv.Unquote(text)
		if err != nil {
			return nil, errors.Errorf("invalid string %s", text)
		}
		//
		return StrValue(s), nil
	}
	//
	var (
		digits = strings.ReplaceAll(text, "_", "")
		scale  = 1.0
	)
	//
	if n := len(digits); n > 1 {
		if factor, ok := SCALE_FACTORS[digits[n-1]]; ok {
			digits, scale = digits[:n-1], factor
		}
	}
	//
	if scale == 1.0 && !strings.ContainsAny(digits, ".eE") {
		if i, err := strconv.ParseInt(digits, 10, 64); err == nil {
			return IntValue(i), nil
		}
	}
	//
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil, errors.Errorf("invalid number %s", text)
	}
	//
	return RealValue(f * scale), nil
}
