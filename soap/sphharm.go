/*
 * sphharm.go, part of chemmap.
 *
 * Copyright 2022 Raul Mera rauldotmeraatusachdotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package soap

import "math"

//MaxL is the largest angular momentum supported by the hardcoded
//real spherical harmonics below.
const MaxL = 3

var (
	y00 = 0.5 * math.Sqrt(1.0/math.Pi)

	y1c = math.Sqrt(3.0 / (4.0 * math.Pi))

	y2m2 = 0.5 * math.Sqrt(15.0/math.Pi)
	y2m1 = 0.5 * math.Sqrt(15.0/math.Pi)
	y20  = 0.25 * math.Sqrt(5.0/math.Pi)
	y2p1 = 0.5 * math.Sqrt(15.0/math.Pi)
	y2p2 = 0.25 * math.Sqrt(15.0/math.Pi)

	y3m3 = 0.25 * math.Sqrt(35.0/(2.0*math.Pi))
	y3m2 = 0.5 * math.Sqrt(105.0/math.Pi)
	y3m1 = 0.25 * math.Sqrt(21.0/(2.0*math.Pi))
	y30  = 0.25 * math.Sqrt(7.0/math.Pi)
	y3p1 = 0.25 * math.Sqrt(21.0/(2.0*math.Pi))
	y3p2 = 0.25 * math.Sqrt(105.0/math.Pi)
	y3p3 = 0.25 * math.Sqrt(35.0/(2.0*math.Pi))
)

//realYlm fills out with the real spherical harmonics of the unit vector
//(x,y,z), for l=0..lmax, indexed as l*l+l+m. out must have at least
//(lmax+1)^2 elements and lmax must not exceed MaxL. The vector is
//assumed normalized; the polynomial forms below are only valid then.
func realYlm(x, y, z float64, lmax int, out []float64) {
	out[0] = y00
	if lmax < 1 {
		return
	}
	out[1] = y1c * y
	out[2] = y1c * z
	out[3] = y1c * x
	if lmax < 2 {
		return
	}
	z2 := z * z
	out[4] = y2m2 * x * y
	out[5] = y2m1 * y * z
	out[6] = y20 * (3.0*z2 - 1.0)
	out[7] = y2p1 * x * z
	out[8] = y2p2 * (x*x - y*y)
	if lmax < 3 {
		return
	}
	x2, y2 := x*x, y*y
	out[9] = y3m3 * y * (3.0*x2 - y2)
	out[10] = y3m2 * x * y * z
	out[11] = y3m1 * y * (5.0*z2 - 1.0)
	out[12] = y30 * z * (5.0*z2 - 3.0)
	out[13] = y3p1 * x * (5.0*z2 - 1.0)
	out[14] = y3p2 * z * (x2 - y2)
	out[15] = y3p3 * x * (x2 - 3.0*y2)
}
