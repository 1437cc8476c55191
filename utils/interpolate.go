// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through four consecutive
// samples at t in [0, 1], where t=0 is y1 and t=1 is y2.
func CubicInterpolate[F Float](y0, y1, y2, y3, t F) F {
	a := (y3-y0)/2 + 3*(y1-y2)/2
	b := y0 - 5*y1/2 + 2*y2 - y3/2
	c := (y2 - y0) / 2

	return ((a*t+b)*t+c)*t + y1
}
