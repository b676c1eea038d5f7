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

package colorant

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Name is the name of a colorant, for example "Cyan" or "PANTONE 123 C".
//
// Names are compared byte by byte.  They need not be valid UTF-8 and may
// contain any byte, including zero.
type Name string

// None is the reserved colorant name used in DeviceN color spaces for
// components which should not be painted.  It is never registered as a
// separation.
const None Name = "None"

// Text returns the name in a form suitable for display.
// Names which are not valid UTF-8 are interpreted as Windows-1252,
// the encoding most commonly found in PostScript and PDF files.
func (n Name) Text() string {
	if utf8.ValidString(string(n)) {
		return string(n)
	}
	s, err := charmap.Windows1252.NewDecoder().String(string(n))
	if err != nil {
		return string(n)
	}
	return s
}

// Kind describes the context in which a colorant name is looked up.
type Kind int

const (
	// KindSpot is used for the colorants of Separation and DeviceN color
	// spaces.  Unknown names of this kind may be added to the registry as
	// new spot colorants.
	KindSpot Kind = iota

	// KindLookup is used for queries which must never change the registry.
	KindLookup
)

func (k Kind) String() string {
	switch k {
	case KindSpot:
		return "spot"
	case KindLookup:
		return "lookup"
	default:
		return "unknown"
	}
}
