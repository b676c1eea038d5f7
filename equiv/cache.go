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

// Package equiv maintains approximate CMYK values for spot colorants.
//
// Output devices which image spot colorants into separate planes can use the
// approximations to produce a quick composite proof, without running the
// spot colors through a color management system.
package equiv

import "slices"

// Frac is a fixed point number, where [FracOne] represents 1.0.
type Frac int16

// FracOne is the Frac value representing 1.0.
const FracOne Frac = 0x7ff8

// CMYK is a color in the DeviceCMYK color space.
type CMYK struct {
	C, M, Y, K Frac
}

// Valid reports whether all components are in the range from 0 to [FracOne].
func (c CMYK) Valid() bool {
	for _, x := range [...]Frac{c.C, c.M, c.Y, c.K} {
		if x < 0 || x > FracOne {
			return false
		}
	}
	return true
}

// Entry is the cached approximation for one spot colorant.
// If Valid is false, the approximation is not known yet and
// Color is ignored.
type Entry struct {
	Valid bool
	Color CMYK
}

// Cache holds one [Entry] for every spot colorant of a registry.
// The zero value is an empty cache.
type Cache struct {
	entries []Entry
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Get returns the approximation for the i-th spot colorant.
// The second return value is false if no approximation is known.
func (c *Cache) Get(i int) (CMYK, bool) {
	e := c.entries[i]
	return e.Color, e.Valid
}

// Set stores the approximation for the i-th spot colorant.
func (c *Cache) Set(i int, col CMYK) {
	c.entries[i] = Entry{Valid: true, Color: col}
}

// Invalidate marks the approximation for the i-th spot colorant as unknown.
func (c *Cache) Invalidate(i int) {
	c.entries[i] = Entry{}
}

// AllValid reports whether every entry of the cache holds an approximation.
func (c *Cache) AllValid() bool {
	for _, e := range c.entries {
		if !e.Valid {
			return false
		}
	}
	return true
}

// Grow appends an invalid entry for a newly added spot colorant.
func (c *Cache) Grow() {
	c.entries = append(c.entries, Entry{})
}

// Reset removes all entries.
func (c *Cache) Reset() {
	c.entries = nil
}

// Entries returns a copy of all entries, in spot colorant order.
func (c *Cache) Entries() []Entry {
	return slices.Clone(c.entries)
}

// Clone returns an independent copy of the cache.
func (c *Cache) Clone() *Cache {
	return &Cache{entries: slices.Clone(c.entries)}
}

// Equal reports whether two caches hold the same entries.
// Colors of invalid entries are not compared.
func (c *Cache) Equal(other *Cache) bool {
	return slices.EqualFunc(c.entries, other.entries, func(a, b Entry) bool {
		return a.Valid == b.Valid && (!a.Valid || a.Color == b.Color)
	})
}
