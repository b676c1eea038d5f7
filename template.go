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
	"errors"
	"fmt"
	"slices"

	"seehuhn.de/go/icc"
)

// Template is the fixed list of process colorants of a color model.
// Templates are immutable and may be shared between any number of
// registries.
type Template struct {
	family    string
	colorants []Name
}

// The process colorant templates of the device color spaces.
var (
	Gray = &Template{family: "DeviceGray", colorants: []Name{"Gray"}}
	RGB  = &Template{family: "DeviceRGB", colorants: []Name{"Red", "Green", "Blue"}}
	CMYK = &Template{family: "DeviceCMYK", colorants: []Name{"Cyan", "Magenta", "Yellow", "Black"}}
)

// NewTemplate returns a template for a process color model with the given
// colorants.  The list must be non-empty, must not contain duplicates and
// must not contain [None].
func NewTemplate(family string, colorants ...Name) (*Template, error) {
	if len(colorants) == 0 {
		return nil, errors.New("process color model needs at least one colorant")
	}
	for i, name := range colorants {
		if name == None {
			return nil, fmt.Errorf("%q is not a valid process colorant", None)
		}
		if slices.Contains(colorants[:i], name) {
			return nil, fmt.Errorf("duplicate process colorant %q", name.Text())
		}
	}
	t := &Template{
		family:    family,
		colorants: slices.Clone(colorants),
	}
	return t, nil
}

// TemplateForICC returns the process template matching the data color space
// of an output ICC profile.
func TemplateForICC(profile []byte) (*Template, error) {
	p, err := icc.Decode(profile)
	if err != nil {
		return nil, err
	}
	switch p.ColorSpace {
	case icc.GraySpace:
		return Gray, nil
	case icc.RGBSpace:
		return RGB, nil
	case icc.CMYKSpace:
		return CMYK, nil
	default:
		return nil, fmt.Errorf("no process colorants for ICC color space %v", p.ColorSpace)
	}
}

// Family returns the name of the color model, for example "DeviceCMYK".
func (t *Template) Family() string {
	return t.family
}

// Len returns the number of process colorants.
func (t *Template) Len() int {
	return len(t.colorants)
}

// Colorant returns the i-th process colorant.
func (t *Template) Colorant(i int) Name {
	return t.colorants[i]
}

// Colorants returns a copy of the list of process colorants.
func (t *Template) Colorants() []Name {
	return slices.Clone(t.colorants)
}

// Index returns the position of name in the template.
func (t *Template) Index(name Name) (int, bool) {
	for i, c := range t.colorants {
		if c == name {
			return i, true
		}
	}
	return -1, false
}
