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

// Package codec converts between colorant intensities and device color
// indices.
//
// A device color index packs one value per device component into a single
// integer.  Each intensity is rounded to the bit depth of the device, and the
// components are concatenated with the first component in the most
// significant bits.  Device color indices are used as hash keys, so the
// reserved value [NoColor] is never produced by [Codec.Encode].
package codec

import (
	"fmt"

	"seehuhn.de/go/colorant"
)

// Intensity is the amount of a colorant, from 0 to [MaxIntensity].
type Intensity uint16

// MaxIntensity is the largest possible colorant intensity.
const MaxIntensity Intensity = 0xFFFF

// Index is a device color index.
type Index uint64

// NoColor is the reserved device color index meaning "no color".
const NoColor Index = ^Index(0)

// MaxWidth is the maximal number of bits in a device color index.
const MaxWidth = 64

// Codec packs and unpacks device color indices for a fixed number of
// components and bits per component.
type Codec struct {
	n   int
	bpc int
}

// New returns a codec for numComponents components of bitsPerComponent bits
// each.  The total width must not exceed [MaxWidth].
func New(numComponents, bitsPerComponent int) (*Codec, error) {
	if bitsPerComponent < 1 || bitsPerComponent > 16 {
		return nil, colorant.RangeError("BitsPerComponent",
			fmt.Sprintf("%d not in range 1-16", bitsPerComponent))
	}
	if numComponents < 1 {
		return nil, colorant.RangeError("NumComponents",
			fmt.Sprintf("%d components", numComponents))
	}
	if numComponents*bitsPerComponent > MaxWidth {
		return nil, colorant.RangeError("NumComponents",
			fmt.Sprintf("%d components of %d bits exceed %d bits",
				numComponents, bitsPerComponent, MaxWidth))
	}
	return &Codec{n: numComponents, bpc: bitsPerComponent}, nil
}

// NumComponents returns the number of components in a device color.
func (c *Codec) NumComponents() int {
	return c.n
}

// BitsPerComponent returns the number of bits used for each component.
func (c *Codec) BitsPerComponent() int {
	return c.bpc
}

// Encode packs one intensity per component into a device color index.
//
// The result is never [NoColor]: if the packed value happens to equal the
// sentinel, the lowest bit is flipped.
//
// Encode panics if len(colors) is not the number of components.
func (c *Codec) Encode(colors []Intensity) Index {
	if len(colors) != c.n {
		panic(fmt.Sprintf("codec: %d colorant values for %d components", len(colors), c.n))
	}
	var idx Index
	for _, x := range colors {
		idx = idx<<c.bpc | Index(Quantize(x, c.bpc))
	}
	if idx == NoColor {
		idx ^= 1
	}
	return idx
}

// Decode unpacks a device color index into one intensity per component.
func (c *Codec) Decode(idx Index) []Intensity {
	mask := Index(1)<<c.bpc - 1
	res := make([]Intensity, c.n)
	for i := c.n - 1; i >= 0; i-- {
		res[i] = Expand(uint16(idx&mask), c.bpc)
		idx >>= c.bpc
	}
	return res
}

// Round returns the intensities which can be represented exactly by the codec
// and are closest to the given values.
func (c *Codec) Round(colors []Intensity) []Intensity {
	res := make([]Intensity, len(colors))
	for i, x := range colors {
		res[i] = Expand(Quantize(x, c.bpc), c.bpc)
	}
	return res
}

// Quantize rounds an intensity to the nearest bpc-bit value.
func Quantize(x Intensity, bpc int) uint16 {
	maxVal := uint64(1)<<bpc - 1
	return uint16((uint64(x)*maxVal + uint64(MaxIntensity)/2) / uint64(MaxIntensity))
}

// Expand scales a bpc-bit value to the full intensity range.
// This is the inverse of [Quantize].
func Expand(q uint16, bpc int) Intensity {
	maxVal := uint64(1)<<bpc - 1
	return Intensity((uint64(q)*uint64(MaxIntensity) + maxVal/2) / maxVal)
}
