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

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"seehuhn.de/go/colorant"
)

func TestEncodeBytes(t *testing.T) {
	c, err := New(4, 8)
	if err != nil {
		t.Fatal(err)
	}

	in := []Intensity{12 * 257, 0, 255 * 257, 64 * 257}
	idx := c.Encode(in)
	if idx != 0x0C00FF40 {
		t.Errorf("wrong index: got 0x%X, want 0x0C00FF40", idx)
	}

	out := c.Decode(idx)
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("round trip failed (-want +got):\n%s", d)
	}
}

func TestFieldOrder(t *testing.T) {
	c, err := New(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	idx := c.Encode([]Intensity{MaxIntensity, 0, Expand(5, 4)})
	if idx != 0xF05 {
		t.Errorf("got 0x%X, want 0xF05", idx)
	}
}

func TestRounding(t *testing.T) {
	type testCase struct {
		x    Intensity
		bpc  int
		want uint16
	}
	cases := []testCase{
		{0, 1, 0},
		{0x7FFF, 1, 0},
		{0x8000, 1, 1},
		{MaxIntensity, 1, 1},
		{0x1FFF, 2, 0}, // 0.375 rounds down
		{0x3000, 2, 1},
		{127, 8, 0},
		{129, 8, 1}, // truncation would give 0
		{MaxIntensity, 16, 0xFFFF},
		{1234, 16, 1234},
	}
	for _, tc := range cases {
		got := Quantize(tc.x, tc.bpc)
		if got != tc.want {
			t.Errorf("Quantize(%d, %d) = %d, want %d", tc.x, tc.bpc, got, tc.want)
		}
	}
}

func TestQuantizeExpand(t *testing.T) {
	for bpc := 1; bpc <= 16; bpc++ {
		maxVal := 1<<bpc - 1
		if Expand(uint16(maxVal), bpc) != MaxIntensity {
			t.Errorf("%d bits: maximum does not expand to full intensity", bpc)
		}
		for q := 0; q <= maxVal; q++ {
			x := Expand(uint16(q), bpc)
			if got := Quantize(x, bpc); got != uint16(q) {
				t.Fatalf("%d bits: Quantize(Expand(%d)) = %d", bpc, q, got)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, bpc := range []int{1, 2, 4, 5, 8} {
		t.Run(fmt.Sprintf("bpc%d", bpc), func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				n := rapid.IntRange(1, MaxWidth/bpc).Draw(rt, "n")
				raw := rapid.SliceOfN(rapid.Uint16(), n, n).Draw(rt, "colors")
				colors := make([]Intensity, n)
				for i, x := range raw {
					colors[i] = Intensity(x)
				}

				c, err := New(n, bpc)
				if err != nil {
					rt.Fatal(err)
				}
				idx := c.Encode(colors)
				if idx == NoColor {
					rt.Fatal("encoded to NoColor")
				}
				if n*bpc == MaxWidth && idx == NoColor^1 {
					return // possibly perturbed
				}
				got := c.Decode(idx)
				if d := cmp.Diff(c.Round(colors), got); d != "" {
					rt.Fatalf("round trip failed (-want +got):\n%s", d)
				}
			})
		})
	}
}

func TestNoColor(t *testing.T) {
	type testCase struct{ n, bpc int }
	cases := []testCase{{64, 1}, {32, 2}, {16, 4}, {8, 8}, {4, 16}}
	for _, tc := range cases {
		c, err := New(tc.n, tc.bpc)
		if err != nil {
			t.Fatal(err)
		}
		colors := make([]Intensity, tc.n)
		for i := range colors {
			colors[i] = MaxIntensity
		}
		idx := c.Encode(colors)
		if idx != 0xFFFF_FFFF_FFFF_FFFE {
			t.Errorf("%dx%d: got 0x%X", tc.n, tc.bpc, idx)
		}
	}

	// narrower indices never reach the sentinel
	c, _ := New(3, 8)
	if idx := c.Encode([]Intensity{MaxIntensity, MaxIntensity, MaxIntensity}); idx != 0xFFFFFF {
		t.Errorf("got 0x%X, want 0xFFFFFF", idx)
	}
}

func TestNew(t *testing.T) {
	type testCase struct{ n, bpc int }
	bad := []testCase{{0, 8}, {-1, 8}, {4, 0}, {4, 17}, {9, 8}, {65, 1}, {5, 13}}
	for _, tc := range bad {
		_, err := New(tc.n, tc.bpc)
		if !errors.Is(err, colorant.ErrRangeCheck) {
			t.Errorf("New(%d, %d): got %v, want range check", tc.n, tc.bpc, err)
		}
	}

	good := []testCase{{1, 1}, {64, 1}, {8, 8}, {4, 16}, {12, 5}}
	for _, tc := range good {
		c, err := New(tc.n, tc.bpc)
		if err != nil {
			t.Errorf("New(%d, %d): %v", tc.n, tc.bpc, err)
			continue
		}
		if c.NumComponents() != tc.n || c.BitsPerComponent() != tc.bpc {
			t.Errorf("New(%d, %d): wrong parameters", tc.n, tc.bpc)
		}
	}
}

func TestEncodePanics(t *testing.T) {
	c, _ := New(4, 8)
	defer func() {
		if recover() == nil {
			t.Error("no panic for short color")
		}
	}()
	c.Encode([]Intensity{1, 2, 3})
}

func FuzzDecodeEncode(f *testing.F) {
	f.Add(uint8(4), uint8(8), uint64(0x0C00FF40))
	f.Add(uint8(64), uint8(1), uint64(0xFFFF_FFFF_FFFF_FFFE))
	f.Add(uint8(3), uint8(5), uint64(0x7FFF))
	f.Fuzz(func(t *testing.T, n, bpc uint8, raw uint64) {
		c, err := New(int(n), int(bpc))
		if err != nil {
			t.Skip("invalid parameters")
		}
		width := int(n) * int(bpc)
		idx := Index(raw) & (NoColor >> (MaxWidth - width))
		if idx == NoColor {
			t.Skip("sentinel")
		}
		if got := c.Encode(c.Decode(idx)); got != idx {
			t.Errorf("%dx%d: 0x%X -> 0x%X", n, bpc, idx, got)
		}
	})
}
