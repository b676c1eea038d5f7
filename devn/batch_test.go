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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/colorant"
	"seehuhn.de/go/colorant/codec"
	"seehuhn.de/go/colorant/equiv"
)

var errTest = errors.New("test allocator exhausted")

// limitedAlloc returns an allocator which fails after n allocations.
func limitedAlloc(n int) func(int) ([]byte, error) {
	return func(size int) ([]byte, error) {
		if n <= 0 {
			return nil, errTest
		}
		n--
		return make([]byte, size), nil
	}
}

func TestApplyAtomic(t *testing.T) {
	host := &recordingHost{}
	r := newCMYK(t, &Options{Capacity: 12, Alloc: limitedAlloc(2), Host: host})

	_, err := r.Apply(&Batch{SpotNames: []colorant.Name{"Gold"}})
	if err != nil {
		t.Fatal(err)
	}
	before := r.Config()

	n := 3
	_, err = r.Apply(&Batch{
		SpotNames:      []colorant.Name{"Silver", "Copper"},
		MaxSeparations: &n,
	})
	if !errors.Is(err, colorant.ErrOutOfMemory) || !errors.Is(err, errTest) {
		t.Fatalf("got %v, want out of memory", err)
	}
	if d := cmp.Diff(before, r.Config(), cmpOpts); d != "" {
		t.Errorf("configuration changed (-want +got):\n%s", d)
	}
	if len(host.calls) != 1 {
		t.Errorf("host notified %d times, want 1", len(host.calls))
	}
}

func TestApplyRejects(t *testing.T) {
	ten, zero := 10, 0
	negative := SpotBudget(-1)
	one := 1
	allSeven := &Batch{
		SpotNames: []colorant.Name{"Gold", "Silver", "Copper"},
		Order: []colorant.Name{
			"Cyan", "Magenta", "Yellow", "Black", "Gold", "Silver", "Copper",
		},
	}
	sixWithTags := &Batch{
		SpotNames: []colorant.Name{"Gold", "Silver"},
		Order: []colorant.Name{
			"Cyan", "Magenta", "Yellow", "Black", "Gold", "Silver",
		},
	}
	cases := []struct {
		desc  string
		opt   Options
		setup *Batch
		b     Batch
	}{
		{"MaxSeparations below active order", Options{}, allSeven, Batch{
			MaxSeparations: &one,
		}},
		{"MaxSeparations below order with reserved", Options{Reserved: []colorant.Name{"Tags"}},
			sixWithTags, Batch{MaxSeparations: &one}},
		{"MaxSeparations too large", Options{}, nil, Batch{MaxSeparations: &ten}},
		{"MaxSeparations zero", Options{}, nil, Batch{MaxSeparations: &zero}},
		{"negative budget", Options{}, nil, Batch{PageSpots: &negative}},
		{"too many names", Options{}, nil, Batch{
			SpotNames: []colorant.Name{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		}},
		{"duplicate order", Options{}, nil, Batch{
			Order: []colorant.Name{"Cyan", "Black", "Cyan"},
		}},
		{"reserved in order", Options{Reserved: []colorant.Name{"Tags"}}, nil, Batch{
			Order: []colorant.Name{"Tags"},
		}},
		{"unknown in order", Options{AutoSpots: AutoSpotsNone}, nil, Batch{
			SpotNames: []colorant.Name{"Gold"},
			Order:     []colorant.Name{"Gold", "Silver"},
		}},
		{"order too long", Options{MaxComponents: 6, Reserved: []colorant.Name{"Tags"}}, nil, Batch{
			SpotNames: []colorant.Name{"Gold", "Silver"},
			Order:     []colorant.Name{"Cyan", "Magenta", "Yellow", "Black", "Gold", "Silver"},
		}},
		{"too many equivalents", Options{}, nil, Batch{
			SpotNames:   []colorant.Name{"Gold"},
			Equivalents: []equiv.Entry{{Valid: true}, {Valid: true}},
		}},
		{"invalid equivalent", Options{}, nil, Batch{
			SpotNames:   []colorant.Name{"Gold"},
			Equivalents: []equiv.Entry{{Valid: true, Color: equiv.CMYK{K: equiv.FracOne + 1}}},
		}},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			opt := c.opt
			opt.Capacity = 12
			host := &recordingHost{}
			opt.Host = host
			r := newCMYK(t, &opt)
			if c.setup != nil {
				if _, err := r.Apply(c.setup); err != nil {
					t.Fatal(err)
				}
				host.calls = nil
			}
			before := r.Config()

			_, err := r.Apply(&c.b)
			if !errors.Is(err, colorant.ErrRangeCheck) {
				t.Errorf("got %v, want range check", err)
			}
			if d := cmp.Diff(before, r.Config(), cmpOpts); d != "" {
				t.Errorf("configuration changed (-want +got):\n%s", d)
			}
			if len(host.calls) != 0 {
				t.Errorf("host notified of rejected change")
			}
		})
	}
}

// TestMaxSeparationsWithOrder checks that every colorant of an explicit
// order stays on its own component when MaxSeparations changes.
func TestMaxSeparationsWithOrder(t *testing.T) {
	r := newCMYK(t, &Options{Capacity: 12, Reserved: []colorant.Name{"Tags"}})
	names := []colorant.Name{"Cyan", "Magenta", "Yellow", "Black", "Gold", "Silver"}
	_, err := r.Apply(&Batch{SpotNames: names[4:], Order: names})
	if err != nil {
		t.Fatal(err)
	}

	two := 2
	sum, err := r.Apply(&Batch{MaxSeparations: &two})
	if err != nil {
		t.Fatal(err)
	}
	if n := sum.Cur.NumComponents; n != 7 {
		t.Fatalf("got %d components, want 7", n)
	}

	owner := make(map[int]colorant.Name)
	for _, name := range append(names, "Tags") {
		res, err := r.Resolve(name, colorant.KindLookup)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if res.Component < 0 || res.Component >= sum.Cur.NumComponents {
			t.Errorf("%s: component %d outside %d components",
				name, res.Component, sum.Cur.NumComponents)
		}
		if other, used := owner[res.Component]; used {
			t.Errorf("%s and %s share component %d", name, other, res.Component)
		}
		owner[res.Component] = name
	}
}

func TestApplyNoChange(t *testing.T) {
	host := &recordingHost{}
	r := newCMYK(t, &Options{Capacity: 12, Host: host})

	b := &Batch{
		SpotNames:   []colorant.Name{"Gold", "Gold", "Cyan"},
		Equivalents: []equiv.Entry{{Valid: true, Color: equiv.CMYK{Y: 100}}},
	}
	sum, err := r.Apply(b)
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Changed || sum.LayoutChanged {
		t.Errorf("first apply: got %+v", sum)
	}
	if d := cmp.Diff([]colorant.Name{"Gold"}, sum.Added); d != "" {
		t.Errorf("added (-want +got):\n%s", d)
	}

	sum, err = r.Apply(b)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Changed || len(sum.Added) != 0 {
		t.Errorf("second apply: got %+v", sum)
	}

	sum, err = r.Apply(nil)
	if err != nil || sum.Changed {
		t.Errorf("nil batch: got %+v, %v", sum, err)
	}

	if len(host.calls) != 1 {
		t.Errorf("host notified %d times, want 1", len(host.calls))
	}
}

func TestApplyLayout(t *testing.T) {
	host := &recordingHost{}
	r := newCMYK(t, &Options{Capacity: 12, Host: host})
	initial := r.Layout()

	two := 2
	sum, err := r.Apply(&Batch{MaxSeparations: &two})
	if err != nil {
		t.Fatal(err)
	}
	want := Layout{NumComponents: 6, MaxComponents: 6, Depth: codec.Depth(6, 8)}
	if d := cmp.Diff(want, sum.Cur); d != "" {
		t.Errorf("layout (-want +got):\n%s", d)
	}
	if !sum.LayoutChanged || sum.Prev != initial {
		t.Errorf("unexpected summary %+v", sum)
	}
	if d := cmp.Diff([]reconfig{{initial, want}}, host.calls); d != "" {
		t.Errorf("host calls (-want +got):\n%s", d)
	}

	// without an explicit order, the budget sets the number of components
	budget := SpotBudget(1)
	sum, err = r.Apply(&Batch{PageSpots: &budget})
	if err != nil {
		t.Fatal(err)
	}
	if n := sum.Cur.NumComponents; n != 5 {
		t.Errorf("budget 1: got %d components, want 5", n)
	}

	// budgets are clamped to the available components
	budget = SpotBudget(100)
	if _, err := r.Apply(&Batch{PageSpots: &budget}); err != nil {
		t.Fatal(err)
	}
	if got := r.Config().PageSpots; got != SpotBudget(2) {
		t.Errorf("got budget %s, want 2", got)
	}

	budget = UnknownBudget()
	sum, err = r.Apply(&Batch{PageSpots: &budget})
	if err != nil {
		t.Fatal(err)
	}
	if n := sum.Cur.NumComponents; n != 6 {
		t.Errorf("unknown budget: got %d components, want 6", n)
	}
}

func TestApplyOrder(t *testing.T) {
	r := newCMYK(t, &Options{Capacity: 12})
	_, err := r.Apply(&Batch{SpotNames: []colorant.Name{"Gold", "Silver"}})
	if err != nil {
		t.Fatal(err)
	}

	// new colorants in the order are added
	sum, err := r.Apply(&Batch{Order: []colorant.Name{"Copper", "Black"}})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]colorant.Name{"Copper"}, sum.Added); d != "" {
		t.Errorf("added (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{6, 3}, r.Config().Order); d != "" {
		t.Errorf("order (-want +got):\n%s", d)
	}
	if sum.Cur.NumComponents != 2 {
		t.Errorf("got %d components, want 2", sum.Cur.NumComponents)
	}

	// an empty order removes the explicit order
	sum, err = r.Apply(&Batch{Order: []colorant.Name{}})
	if err != nil {
		t.Fatal(err)
	}
	if r.HasOrder() || sum.Cur.NumComponents != 12 {
		t.Errorf("order not cleared: %+v", sum.Cur)
	}
	for pos, want := range []int{0, 1, 2, 3, 4, 5, 6} {
		if slot, ok := r.OrderMap(pos); !ok || slot != want {
			t.Errorf("OrderMap(%d) = %d, %t", pos, slot, ok)
		}
	}
	if _, ok := r.OrderMap(7); ok {
		t.Error("OrderMap(7) reported an unused slot")
	}
}

func TestBudgetString(t *testing.T) {
	if s := UnknownBudget().String(); s != "unknown" {
		t.Errorf("got %q", s)
	}
	if s := SpotBudget(3).String(); s != "3" {
		t.Errorf("got %q", s)
	}
}
