// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"sort"
)

// Key is a point on a Curve.
type Key struct {
	Time  float32
	Value float32
}

// Curve is a response curve of keys sorted by Time, evaluated piecewise-linearly.
// An empty Curve is the identity.
type Curve []Key

// LinearCurve maps [0, 1] onto itself.
func LinearCurve() Curve {
	return Curve{{Time: 0, Value: 0}, {Time: 1, Value: 1}}
}

// Evaluate clamps to the first/last key outside of the key range.
func (curve Curve) Evaluate(t float32) float32 {
	if len(curve) == 0 {
		return t
	}

	first := curve[0]
	last := curve[len(curve)-1]
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	// first.Time < t < last.Time so 0 < i < len(curve)
	i := sort.Search(len(curve), func(i int) bool {
		return curve[i].Time > t
	})
	a, b := curve[i-1], curve[i]
	return lerp(a.Value, b.Value, (t-a.Time)/(b.Time-a.Time))
}

func (curve Curve) Validate() error {
	for i := 1; i < len(curve); i++ {
		if curve[i].Time <= curve[i-1].Time {
			return fmt.Errorf("curve key %d time %g not after %g", i, curve[i].Time, curve[i-1].Time)
		}
	}
	return nil
}
