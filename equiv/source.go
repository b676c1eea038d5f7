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

package equiv

import (
	"strings"

	"golang.org/x/image/colornames"

	"seehuhn.de/go/colorant"
)

// Source provides approximate CMYK values for colorant names.
type Source interface {
	Equivalent(name colorant.Name) (CMYK, bool)
}

// Table is a [Source] which uses a fixed map from names to colors.
type Table map[colorant.Name]CMYK

// Equivalent implements the [Source] interface.
func (t Table) Equivalent(name colorant.Name) (CMYK, bool) {
	c, ok := t[name]
	return c, ok
}

// Sources combines several sources.  The first source which knows a name is
// used.
type Sources []Source

// Equivalent implements the [Source] interface.
func (s Sources) Equivalent(name colorant.Name) (CMYK, bool) {
	for _, src := range s {
		if c, ok := src.Equivalent(name); ok {
			return c, true
		}
	}
	return CMYK{}, false
}

// NamedColors approximates colorants named after SVG 1.1 colors, for example
// "Orange" or "Dark Green".  Case and spaces are ignored.
var NamedColors Source = namedColors{}

type namedColors struct{}

func (namedColors) Equivalent(name colorant.Name) (CMYK, bool) {
	key := strings.ToLower(strings.ReplaceAll(string(name), " ", ""))
	rgba, ok := colornames.Map[key]
	if !ok {
		return CMYK{}, false
	}
	return FromRGB(rgba.R, rgba.G, rgba.B), true
}

// FromRGB converts an sRGB color to CMYK, using the naive formula with full
// gray component replacement.
func FromRGB(r, g, b uint8) CMYK {
	maxC := max(r, g, b)
	if maxC == 0 {
		return CMYK{K: FracOne}
	}
	m := int(maxC)
	scale := func(x uint8) Frac {
		return Frac((int(FracOne)*(m-int(x)) + m/2) / m)
	}
	return CMYK{
		C: scale(r),
		M: scale(g),
		Y: scale(b),
		K: Frac((int(FracOne)*(255-m) + 127) / 255),
	}
}
