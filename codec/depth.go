// seehuhn.de/go/colorant - a registry for colorants and separations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package codec

// depths lists the pixel depth for 1 to 4 components, indexed by the number
// of bits per component minus one.  Zero entries are unused.
var depths = [4][8]uint8{
	{1, 2, 0, 4, 8, 0, 0, 8},
	{2, 4, 0, 8, 16, 0, 0, 16},
	{4, 8, 0, 16, 16, 0, 0, 24},
	{4, 8, 0, 16, 32, 0, 0, 32},
}

// Depth returns the number of bits needed to store one pixel with the given
// number of components.
//
// For up to four components of 1, 2, 4, 5 or 8 bits, the depth matches the
// pixel formats of common raster hardware, where several pixels share a
// byte or pixels are padded to a power of two.  In all other cases the depth
// is rounded up to a whole number of bytes.
func Depth(numComponents, bitsPerComponent int) int {
	if numComponents >= 1 && numComponents <= 4 {
		switch bitsPerComponent {
		case 1, 2, 4, 5, 8:
			return int(depths[numComponents-1][bitsPerComponent-1])
		}
	}
	return (numComponents*bitsPerComponent + 7) &^ 7
}
