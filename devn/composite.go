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

package devn

import (
	"seehuhn.de/go/colorant"
	"seehuhn.de/go/colorant/equiv"
)

// CompositeMap returns the approximate CMYK value of every device component.
// This is used when separations are combined into a composite preview.
//
// The process colorants Cyan, Magenta, Yellow and Black map to the
// corresponding unit colors.  Spot colorants map to their CMYK equivalent,
// if known.  All other components map to zero.
func (r *Registry) CompositeMap() []equiv.CMYK {
	s := r.st
	res := make([]equiv.CMYK, s.layout.NumComponents)
	for comp := range res {
		slot, ok := r.componentSlot(s, comp)
		if !ok {
			continue
		}
		res[comp] = r.slotCMYK(s, slot)
	}
	return res
}

// ComponentColorant returns the colorant imaged by a device component.
func (r *Registry) ComponentColorant(comp int) (colorant.Name, bool) {
	s := r.st
	if comp < 0 || comp >= s.layout.NumComponents {
		return "", false
	}
	slot, ok := r.componentSlot(s, comp)
	if !ok {
		return "", false
	}
	return r.SlotName(slot)
}

// componentSlot returns the physical slot imaged by a device component.
func (r *Registry) componentSlot(s *state, comp int) (int, bool) {
	n := s.layout.NumComponents
	numRes := len(r.reserved)
	if comp >= n-numRes {
		return r.reservedBase() + comp - (n - numRes), true
	}
	if len(s.order) > 0 {
		if comp < len(s.order) {
			return s.order[comp], true
		}
		return -1, false
	}
	if comp < r.process.Len()+len(s.spots) {
		return comp, true
	}
	return -1, false
}

func (r *Registry) slotCMYK(s *state, slot int) equiv.CMYK {
	p := r.process.Len()
	if slot < p {
		switch r.process.Colorant(slot) {
		case "Cyan":
			return equiv.CMYK{C: equiv.FracOne}
		case "Magenta":
			return equiv.CMYK{M: equiv.FracOne}
		case "Yellow":
			return equiv.CMYK{Y: equiv.FracOne}
		case "Black":
			return equiv.CMYK{K: equiv.FracOne}
		}
		return equiv.CMYK{}
	}
	if j := slot - p; j < len(s.spots) {
		if c, ok := s.equiv.Get(j); ok {
			return c
		}
	}
	return equiv.CMYK{}
}
