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
	"fmt"
	"log/slog"
	"slices"

	"seehuhn.de/go/colorant"
	"seehuhn.de/go/colorant/equiv"
)

// Parameter names used in error messages.
const (
	ParamSeparationColorNames = "SeparationColorNames"
	ParamSeparationOrder      = "SeparationOrder"
	ParamMaxSeparations       = "MaxSeparations"
	ParamPageSpotColors       = "PageSpotColors"
	ParamEquivCMYKColors      = ".EquivCMYKColors"
)

// Batch is a set of configuration changes which are applied together.
// Nil fields are left unchanged.
type Batch struct {
	// SpotNames lists spot colorants to add.  Colorants which are already
	// known are skipped.
	SpotNames []colorant.Name

	// Order, if non-nil, replaces the separation order.  An empty, non-nil
	// slice removes the explicit order.
	Order []colorant.Name

	// MaxSeparations, if set, is the number of spot colorants the device
	// can image.
	MaxSeparations *int

	// PageSpots, if set, replaces the page spot color budget.
	PageSpots *Budget

	// Equivalents, if set, replaces the CMYK values of the first
	// len(Equivalents) spot colorants.
	Equivalents []equiv.Entry
}

// Summary describes the effect of a successful [Registry.Apply] call.
type Summary struct {
	// Changed is true if any part of the configuration was modified.
	Changed bool

	// LayoutChanged is true if the device layout was modified.
	LayoutChanged bool

	Prev, Cur Layout

	// Added lists the spot colorants added by the batch.
	Added []colorant.Name
}

// Config is a snapshot of the registry configuration.
type Config struct {
	SpotNames []colorant.Name

	// Order lists the physical slots of the explicit separation order,
	// or is nil if no explicit order is set.
	Order []int

	// MaxSeparations is 0 if the value has never been set.
	MaxSeparations int

	PageSpots   Budget
	Equivalents []equiv.Entry
	Layout      Layout
}

// Config returns a copy of the current configuration.
func (r *Registry) Config() *Config {
	s := r.st
	return &Config{
		SpotNames:      r.SpotNames(),
		Order:          slices.Clone(s.order),
		MaxSeparations: s.maxSeps,
		PageSpots:      s.pageSpots,
		Equivalents:    s.equiv.Entries(),
		Layout:         s.layout,
	}
}

// Apply applies all changes in b.
//
// The new configuration is built on a copy of the current state and only
// replaces the current state if all changes are valid.  If an error is
// returned, the registry is unchanged.  If the configuration changed, the
// host is notified after the new state is in place.
func (r *Registry) Apply(b *Batch) (Summary, error) {
	old := r.st
	if b == nil {
		return Summary{Prev: old.layout, Cur: old.layout}, nil
	}

	s, added, err := r.build(old, b)
	if err != nil {
		r.log.Debug("configuration rejected", slog.Any("error", err))
		return Summary{Prev: old.layout, Cur: old.layout}, err
	}

	sum := Summary{
		Changed:       !s.equal(old),
		LayoutChanged: s.layout != old.layout,
		Prev:          old.layout,
		Cur:           s.layout,
		Added:         added,
	}
	r.st = s

	if sum.Changed {
		r.log.Debug("configuration changed",
			slog.Int("spots", len(s.spots)),
			slog.Int("components", s.layout.NumComponents),
			slog.Int("depth", s.layout.Depth))
		if r.host != nil {
			r.host.Reconfigure(sum.Prev, sum.Cur)
		}
	}
	return sum, nil
}

// build returns the state which results from applying b to old.
// The old state is not modified.
func (r *Registry) build(old *state, b *Batch) (*state, []colorant.Name, error) {
	p := r.process.Len()
	numRes := len(r.reserved)
	room := r.spotRoom()

	s := old.clone()

	if b.MaxSeparations != nil {
		n := *b.MaxSeparations
		if n < 1 || n > room {
			return nil, nil, colorant.RangeError(ParamMaxSeparations,
				fmt.Sprintf("%d not in range 1-%d", n, room))
		}
		s.maxSeps = n
	}
	maxComponents := r.maxComponents(s)
	if b.Order == nil && len(s.order) > maxComponents-numRes {
		return nil, nil, colorant.RangeError(ParamMaxSeparations,
			fmt.Sprintf("separation order of %d colorants exceeds %d components",
				len(s.order), maxComponents-numRes))
	}

	if b.PageSpots != nil {
		n, known := b.PageSpots.Count()
		switch {
		case !known:
			s.pageSpots = UnknownBudget()
		case n < 0:
			return nil, nil, colorant.RangeError(ParamPageSpotColors,
				fmt.Sprintf("negative count %d", n))
		default:
			s.pageSpots = SpotBudget(min(n, maxComponents-p-numRes))
		}
	}

	if len(b.SpotNames) > r.capacity {
		return nil, nil, colorant.RangeError(ParamSeparationColorNames,
			fmt.Sprintf("%d names exceed capacity %d", len(b.SpotNames), r.capacity))
	}
	if len(b.Order) > maxComponents-numRes {
		return nil, nil, colorant.RangeError(ParamSeparationOrder,
			fmt.Sprintf("%d entries exceed %d components", len(b.Order), maxComponents-numRes))
	}
	for i, e := range b.Equivalents {
		if e.Valid && !e.Color.Valid() {
			return nil, nil, colorant.RangeError(ParamEquivCMYKColors,
				fmt.Sprintf("entry %d: invalid color %v", i, e.Color))
		}
	}

	var added []colorant.Name
	for _, name := range b.SpotNames {
		if name == colorant.None {
			return nil, nil, colorant.RangeError(ParamSeparationColorNames,
				"None is not a colorant")
		}
		if _, found := r.find(s, name); found {
			continue
		}
		if len(s.spots) >= room {
			return nil, nil, colorant.RangeError(ParamSeparationColorNames,
				fmt.Sprintf("more than %d spot colorants", room))
		}
		if _, err := r.allocate(s, name); err != nil {
			return nil, nil, &colorant.ParamError{Param: ParamSeparationColorNames, Err: err}
		}
		added = append(added, name)
	}

	if b.Order != nil {
		var order []int
		for _, name := range b.Order {
			slot, isNew, err := r.orderSlot(s, name)
			if err != nil {
				return nil, nil, err
			}
			if slices.Contains(order, slot) {
				return nil, nil, colorant.RangeError(ParamSeparationOrder,
					fmt.Sprintf("duplicate colorant %q", name.Text()))
			}
			if isNew {
				added = append(added, name)
			}
			order = append(order, slot)
		}
		s.order = order
	}

	if len(b.Equivalents) > len(s.spots) {
		return nil, nil, colorant.RangeError(ParamEquivCMYKColors,
			fmt.Sprintf("%d entries for %d spot colorants", len(b.Equivalents), len(s.spots)))
	}
	for j, e := range b.Equivalents {
		if e.Valid {
			s.equiv.Set(j, e.Color)
		} else {
			s.equiv.Invalidate(j)
		}
	}

	if len(s.spots) != len(old.spots) ||
		!slices.Equal(s.order, old.order) ||
		s.maxSeps != old.maxSeps ||
		s.pageSpots != old.pageSpots {
		s.layout = r.layoutFor(s)
	}

	return s, added, nil
}

// orderSlot finds the slot for a separation order entry, adding new spot
// colorants where the auto-spot policy permits.
func (r *Registry) orderSlot(s *state, name colorant.Name) (int, bool, error) {
	slot, found := r.find(s, name)
	if found {
		if r.isReserved(slot) {
			return -1, false, colorant.RangeError(ParamSeparationOrder,
				fmt.Sprintf("reserved colorant %q", name.Text()))
		}
		return slot, false, nil
	}
	if name == colorant.None || r.autoSpots == AutoSpotsNone {
		return -1, false, colorant.RangeError(ParamSeparationOrder,
			fmt.Sprintf("unknown colorant %q", name.Text()))
	}
	if len(s.spots) >= r.autoLimit(s) {
		return -1, false, colorant.RangeError(ParamSeparationOrder,
			fmt.Sprintf("no room for colorant %q", name.Text()))
	}
	slot, err := r.allocate(s, name)
	if err != nil {
		return -1, false, &colorant.ParamError{Param: ParamSeparationOrder, Err: err}
	}
	return slot, true, nil
}
