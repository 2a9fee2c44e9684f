/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package syncengine

import "sort"

// IQRMultiplier is the fixed k used by LatencyProfile.InRange.
const IQRMultiplier = 1.5

// LatencyProfile is a five-number summary of observed RTTs in seconds, plus
// the derived interquartile range. It is built once in Phase 1 and consumed
// read-only by Phases 2-4.
type LatencyProfile struct {
	Min    float64
	Q1     float64
	Median float64
	Mean   float64
	Q3     float64
	Max    float64
}

// IQR returns Q3-Q1.
func (p LatencyProfile) IQR() float64 {
	return p.Q3 - p.Q1
}

// InRange reports whether rtt falls within [Q1-k*IQR, Q3+k*IQR], the
// outlier-rejection predicate used throughout Phases 2-4.
func (p LatencyProfile) InRange(rttSecs float64, k float64) bool {
	iqr := p.IQR()
	lower := p.Q1 - k*iqr
	upper := p.Q3 + k*iqr
	return rttSecs >= lower && rttSecs <= upper
}

// quartile computes the linear-interpolated quartile at index q/4 of the
// sorted sample set: index = (n-1)*q/4, split into an
// integer part and a remainder, interpolating between the two neighboring
// samples. q ranges over {0,1,2,3,4} for {min,q1,median,q3,max}.
func quartile(sorted []float64, q int) float64 {
	n := len(sorted)
	index := float64(n-1) * float64(q) / 4.0
	lo := int(index)
	hi := lo + 1
	if hi >= n {
		return sorted[lo]
	}
	frac := index - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// computeLatencyProfile builds a LatencyProfile from the RTTs (in seconds)
// collected during Phase 1. Requires at least one sample.
func computeLatencyProfile(rtts []float64) LatencyProfile {
	sorted := make([]float64, len(rtts))
	copy(sorted, rtts)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	return LatencyProfile{
		Min:    quartile(sorted, 0),
		Q1:     quartile(sorted, 1),
		Median: quartile(sorted, 2),
		Mean:   sum / float64(len(sorted)),
		Q3:     quartile(sorted, 3),
		Max:    quartile(sorted, 4),
	}
}
