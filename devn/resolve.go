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
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"seehuhn.de/go/colorant"
)

// Status describes the outcome of resolving a colorant name.
type Status int

const (
	// Existing indicates that the colorant was already known.
	Existing Status = iota

	// Allocated indicates that the colorant was added to the registry.
	Allocated

	// NotImaged indicates that the colorant is, or would be, stored in the
	// registry but does not correspond to a device component.
	NotImaged
)

func (s Status) String() string {
	switch s {
	case Existing:
		return "existing"
	case Allocated:
		return "allocated"
	case NotImaged:
		return "not imaged"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Resolution is the result of resolving a colorant name.
type Resolution struct {
	Status Status

	// Slot is the physical slot of the colorant, or -1 if the colorant
	// could not be stored.
	Slot int

	// Component is the device component which images the colorant, or -1
	// if the colorant is not imaged.
	Component int
}

// Resolver maps colorant names to device components.
type Resolver interface {
	Resolve(name colorant.Name, kind colorant.Kind) (Resolution, error)
}

var _ Resolver = (*Registry)(nil)

// Resolve returns the device component for the given colorant.
//
// If the colorant is unknown and kind is [colorant.KindSpot], the colorant
// may be added to the registry, depending on the auto-spot policy.  If the
// name cannot be resolved, [colorant.ErrNotFound] is returned.  This is
// an expected outcome, for example when a color space must fall back to its
// alternate space.
func (r *Registry) Resolve(name colorant.Name, kind colorant.Kind) (Resolution, error) {
	s := r.st

	slot, found := r.find(s, name)
	if found {
		return r.translate(s, slot, Existing), nil
	}

	if kind != colorant.KindSpot || name == colorant.None ||
		r.autoSpots == AutoSpotsNone || len(s.order) > 0 {
		return Resolution{Slot: -1, Component: -1}, colorant.ErrNotFound
	}

	if len(s.spots) >= r.autoLimit(s) {
		r.log.Debug("spot colorant not imaged",
			slog.String("name", name.Text()),
			slog.Int("spots", len(s.spots)))
		return Resolution{Status: NotImaged, Slot: -1, Component: -1}, nil
	}

	slot, err := r.allocate(s, name)
	if err != nil {
		return Resolution{Slot: -1, Component: -1}, err
	}
	return r.translate(s, slot, Allocated), nil
}

// DeviceNMap maps the colorants of a DeviceN or Separation color space to
// device components.  Colorants which are not imaged, including None, map
// to -1.  If any other colorant cannot be resolved, the color space needs
// to use its alternate space and [colorant.ErrNotFound] is returned.
func DeviceNMap(res Resolver, names []colorant.Name) ([]int, error) {
	comps := make([]int, len(names))
	for i, name := range names {
		if name == colorant.None {
			comps[i] = -1
			continue
		}
		r, err := res.Resolve(name, colorant.KindSpot)
		if err != nil {
			return nil, err
		}
		comps[i] = r.Component
	}
	return comps, nil
}

// find locates a colorant in process, reserved and spot order.
func (r *Registry) find(s *state, name colorant.Name) (int, bool) {
	if i, ok := r.process.Index(name); ok {
		return i, true
	}
	for i, c := range r.reserved {
		if c == name {
			return r.reservedBase() + i, true
		}
	}
	p := r.process.Len()
	for j, buf := range s.spots {
		if string(buf) == string(name) {
			return p + j, true
		}
	}
	return -1, false
}

// autoLimit returns the number of spot colorants up to which new spots are
// added automatically.
func (r *Registry) autoLimit(s *state) int {
	p := r.process.Len()
	numRes := len(r.reserved)

	limit := r.spotRoom()
	if r.autoSpots == AutoSpotsEnable {
		limit = min(limit, r.maxComponents(s)-p-numRes)
	}
	if r.budgetPolicy == BudgetLimit {
		if n, ok := s.pageSpots.Count(); ok {
			limit = min(limit, n)
		}
	}
	return limit
}

// allocate appends a new spot colorant to s and returns its slot.
// The caller must check that there is room for the new colorant.
func (r *Registry) allocate(s *state, name colorant.Name) (int, error) {
	buf, err := r.alloc(len(name))
	if err != nil || len(buf) < len(name) {
		return -1, memError([]byte(name), err)
	}
	buf = buf[:len(name)]
	copy(buf, name)

	slot := r.process.Len() + len(s.spots)
	s.spots = append(s.spots, buf)
	s.equiv.Grow()

	r.log.Debug("spot colorant added",
		slog.String("name", name.Text()),
		slog.Int("slot", slot))
	return slot, nil
}

// memError reports a failure to allocate storage for a colorant name.
func memError(name []byte, err error) error {
	if err == nil {
		err = colorant.ErrOutOfMemory
	} else {
		err = errors.Join(colorant.ErrOutOfMemory, err)
	}
	return &colorant.ParamError{Param: colorant.Name(name).Text(), Err: err}
}

// translate converts a physical slot into a device component.
func (r *Registry) translate(s *state, slot int, status Status) Resolution {
	res := Resolution{Status: status, Slot: slot, Component: -1}

	if r.isReserved(slot) {
		res.Component = s.layout.NumComponents - len(r.reserved) + (slot - r.reservedBase())
		return res
	}

	if len(s.order) > 0 {
		pos := slices.Index(s.order, slot)
		if pos < 0 {
			res.Status = NotImaged
			return res
		}
		res.Component = pos
		return res
	}

	if slot >= s.layout.NumComponents-len(r.reserved) {
		res.Status = NotImaged
		return res
	}
	res.Component = slot
	return res
}
