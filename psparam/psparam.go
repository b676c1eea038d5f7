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

// Package psparam converts between PostScript device parameter dictionaries
// and the configuration of a [devn.Registry].
//
// The following parameters are supported:
//
//   - SeparationColorNames: an array of names or strings
//   - SeparationOrder: an array of names or strings
//   - MaxSeparations: an integer
//   - PageSpotColors: an integer, -1 if the number is unknown
//   - .EquivCMYKColors: an array of integers, five per spot colorant, giving a
//     validity flag followed by the cyan, magenta, yellow and black values.
package psparam

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"seehuhn.de/go/postscript"

	"seehuhn.de/go/colorant"
	"seehuhn.de/go/colorant/devn"
	"seehuhn.de/go/colorant/equiv"
)

// ErrTypeCheck indicates a parameter value of the wrong type.
var ErrTypeCheck = errors.New("type check")

// Get returns the current registry configuration as a parameter dictionary.
func Get(r *devn.Registry) postscript.Dict {
	cfg := r.Config()

	names := make(postscript.Array, len(cfg.SpotNames))
	for i, name := range cfg.SpotNames {
		names[i] = postscript.Name(name)
	}

	order := postscript.Array{}
	for _, slot := range cfg.Order {
		name, _ := r.SlotName(slot)
		order = append(order, postscript.Name(name))
	}

	pageSpots := -1
	if n, ok := cfg.PageSpots.Count(); ok {
		pageSpots = n
	}

	d := postscript.Dict{}
	d[devn.ParamSeparationColorNames] = names
	d[devn.ParamSeparationOrder] = order
	d[devn.ParamPageSpotColors] = postscript.Integer(pageSpots)
	if cfg.MaxSeparations > 0 {
		d[devn.ParamMaxSeparations] = postscript.Integer(cfg.MaxSeparations)
	}
	if len(cfg.Equivalents) > 0 {
		equivs := make(postscript.Array, 0, 5*len(cfg.Equivalents))
		for _, e := range cfg.Equivalents {
			flag := 0
			if e.Valid {
				flag = 1
			}
			equivs = append(equivs,
				postscript.Integer(flag),
				postscript.Integer(e.Color.C),
				postscript.Integer(e.Color.M),
				postscript.Integer(e.Color.Y),
				postscript.Integer(e.Color.K))
		}
		d[devn.ParamEquivCMYKColors] = equivs
	}
	return d
}

// Put applies the parameters in d to r.
// Unknown keys are ignored.  If an error is returned, r is unchanged.
func Put(r *devn.Registry, d postscript.Dict) (devn.Summary, error) {
	b, err := Parse(d)
	if err != nil {
		return devn.Summary{Prev: r.Layout(), Cur: r.Layout()}, err
	}
	return r.Apply(b)
}

// Parse converts a parameter dictionary into a configuration batch.
func Parse(d postscript.Dict) (*devn.Batch, error) {
	b := &devn.Batch{}

	if obj, ok := d[devn.ParamSeparationColorNames]; ok {
		names, err := nameArray(devn.ParamSeparationColorNames, obj)
		if err != nil {
			return nil, err
		}
		b.SpotNames = names
	}

	if obj, ok := d[devn.ParamSeparationOrder]; ok {
		names, err := nameArray(devn.ParamSeparationOrder, obj)
		if err != nil {
			return nil, err
		}
		b.Order = names
	}

	if obj, ok := d[devn.ParamMaxSeparations]; ok {
		n, err := integer(devn.ParamMaxSeparations, obj)
		if err != nil {
			return nil, err
		}
		b.MaxSeparations = &n
	}

	if obj, ok := d[devn.ParamPageSpotColors]; ok {
		n, err := integer(devn.ParamPageSpotColors, obj)
		if err != nil {
			return nil, err
		}
		var budget devn.Budget
		switch {
		case n == -1:
			budget = devn.UnknownBudget()
		case n < -1:
			return nil, colorant.RangeError(devn.ParamPageSpotColors,
				fmt.Sprintf("invalid count %d", n))
		default:
			budget = devn.SpotBudget(n)
		}
		b.PageSpots = &budget
	}

	if obj, ok := d[devn.ParamEquivCMYKColors]; ok {
		entries, err := equivArray(obj)
		if err != nil {
			return nil, err
		}
		b.Equivalents = entries
	}

	return b, nil
}

func nameArray(key string, obj postscript.Object) ([]colorant.Name, error) {
	a, ok := obj.(postscript.Array)
	if !ok {
		return nil, typeError(key, obj)
	}
	names := make([]colorant.Name, 0, len(a))
	for _, elem := range a {
		switch x := elem.(type) {
		case postscript.Name:
			names = append(names, colorant.Name(x))
		case postscript.String:
			names = append(names, colorant.Name(x))
		default:
			return nil, typeError(key, elem)
		}
	}
	return names, nil
}

func integer(key string, obj postscript.Object) (int, error) {
	x, ok := obj.(postscript.Integer)
	if !ok {
		return 0, typeError(key, obj)
	}
	return int(x), nil
}

func equivArray(obj postscript.Object) ([]equiv.Entry, error) {
	key := devn.ParamEquivCMYKColors
	a, ok := obj.(postscript.Array)
	if !ok {
		return nil, typeError(key, obj)
	}
	if len(a)%5 != 0 {
		return nil, colorant.RangeError(key,
			fmt.Sprintf("%d values is not a multiple of 5", len(a)))
	}

	var vals [5]int
	entries := make([]equiv.Entry, len(a)/5)
	for j := range entries {
		for k := range vals {
			n, err := integer(key, a[5*j+k])
			if err != nil {
				return nil, err
			}
			vals[k] = n
		}
		if vals[0] == 0 {
			continue
		}
		for _, x := range vals[1:] {
			if x < 0 || x > int(equiv.FracOne) {
				return nil, colorant.RangeError(key,
					fmt.Sprintf("entry %d: value %d out of range", j, x))
			}
		}
		entries[j] = equiv.Entry{
			Valid: true,
			Color: equiv.CMYK{
				C: equiv.Frac(vals[1]),
				M: equiv.Frac(vals[2]),
				Y: equiv.Frac(vals[3]),
				K: equiv.Frac(vals[4]),
			},
		}
	}
	return entries, nil
}

func typeError(key string, obj postscript.Object) error {
	return &colorant.ParamError{
		Param: key,
		Err:   fmt.Errorf("%w: unexpected %T", ErrTypeCheck, obj),
	}
}

// Format returns the PostScript representation of a parameter dictionary.
// Keys are sorted, so that the output is deterministic.
func Format(d postscript.Dict) string {
	b := &strings.Builder{}
	writeDict(b, d)
	return b.String()
}

func writeDict(b *strings.Builder, d postscript.Dict) {
	b.WriteString("<<")
	for _, key := range slices.Sorted(maps.Keys(d)) {
		b.WriteByte(' ')
		b.WriteString(postscript.Name(key).PS())
		b.WriteByte(' ')
		writeObject(b, d[key])
	}
	b.WriteString(" >>")
}

func writeObject(b *strings.Builder, obj postscript.Object) {
	switch x := obj.(type) {
	case postscript.Name:
		b.WriteString(x.PS())
	case postscript.String:
		b.WriteString(x.PS())
	case postscript.Integer:
		b.WriteString(strconv.Itoa(int(x)))
	case postscript.Array:
		b.WriteByte('[')
		for i, elem := range x {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeObject(b, elem)
		}
		b.WriteByte(']')
	case postscript.Dict:
		writeDict(b, x)
	case nil:
		b.WriteString("null")
	default:
		fmt.Fprint(b, x)
	}
}
