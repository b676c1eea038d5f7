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

// Package devn maps colorant names to the components of a raster output
// device.
//
// A [Registry] knows the process colorants of the device's color model and
// the spot colorants which were declared using device parameters or which were
// discovered while interpreting a page.  It assigns every colorant a physical
// slot.  Slots are stable: once a spot colorant has been added, its slot does
// not change until the registry is reset.  An optional separation order
// selects which slots are imaged, and in which order the device components
// appear.
//
// Configuration changes are applied using [Registry.Apply].  Either all
// fields of a [Batch] take effect, or none of them.
//
// A Registry must not be used concurrently.  Use [Registry.Replicate] to
// obtain an independent copy for each goroutine.
package devn

import (
	"bytes"
	"fmt"
	"log/slog"
	"slices"

	"seehuhn.de/go/colorant"
	"seehuhn.de/go/colorant/codec"
	"seehuhn.de/go/colorant/equiv"
)

// MaxCapacity is the largest number of colorants a registry can hold.
const MaxCapacity = 64

// AutoSpotPolicy controls whether unknown spot colorants are added to the
// registry when they are first used.
type AutoSpotPolicy int

const (
	// AutoSpotsEnable adds new spot colorants as long as they can be
	// imaged by the device.
	AutoSpotsEnable AutoSpotPolicy = iota

	// AutoSpotsNone never adds spot colorants automatically.
	AutoSpotsNone

	// AutoSpotsAllowExtra adds spot colorants until the capacity of the
	// registry is reached, even if the device cannot image them.
	AutoSpotsAllowExtra
)

// BudgetPolicy controls how the page spot color budget interacts with spot
// colorants discovered while a page is interpreted.
type BudgetPolicy int

const (
	// BudgetHint uses the page budget only to size the device layout.
	BudgetHint BudgetPolicy = iota

	// BudgetLimit also stops adding spot colorants automatically once the
	// budget is used up.
	BudgetLimit
)

// Budget is the number of spot colorants expected on a page.
// The zero value represents an unknown budget.
type Budget struct {
	n     int
	known bool
}

// UnknownBudget returns the budget used for input where the number of spot
// colorants cannot be determined in advance, for example PostScript.
func UnknownBudget() Budget {
	return Budget{}
}

// SpotBudget returns a budget of n spot colorants.
func SpotBudget(n int) Budget {
	return Budget{n: n, known: true}
}

// Count returns the number of spot colorants in the budget.
// The second return value is false if the budget is unknown.
func (b Budget) Count() (int, bool) {
	return b.n, b.known
}

func (b Budget) String() string {
	if !b.known {
		return "unknown"
	}
	return fmt.Sprintf("%d", b.n)
}

// Layout describes the device color layout which results from the registry
// configuration.
type Layout struct {
	// NumComponents is the number of components in a device color.
	NumComponents int

	// MaxComponents is the number of components the device can image.
	MaxComponents int

	// Depth is the number of bits per pixel.
	Depth int

	// NumPlanes is the number of planes for planar devices, or 0.
	NumPlanes int
}

// Host is notified when a configuration change requires the output device to
// be closed and reopened with a new layout.
type Host interface {
	Reconfigure(prev, cur Layout)
}

// Options control the construction of a [Registry].
// The zero value selects the defaults.
type Options struct {
	// Capacity is the total number of colorants, including the process
	// and reserved colorants.  The default is [MaxCapacity].
	Capacity int

	// BitsPerComponent is the component depth of device colors.
	// The default is 8.
	BitsPerComponent int

	// Reserved lists colorants which follow all other device components,
	// for example an object tag channel.  Reserved colorants occupy capacity
	// but are not process colorants.
	Reserved []colorant.Name

	// MaxComponents is the initial number of components the device can
	// image.  The default is Capacity.
	MaxComponents int

	// Planar indicates that the device stores each component in its own
	// plane.
	Planar bool

	AutoSpots AutoSpotPolicy
	Budget    BudgetPolicy

	// Alloc, if set, provides the storage for spot colorant names.
	Alloc func(n int) ([]byte, error)

	// Host, if set, is notified of configuration changes.
	Host Host

	// Logger receives debug messages.  The default discards all output.
	Logger *slog.Logger
}

// Registry maps colorant names to device components.
type Registry struct {
	process  *colorant.Template
	reserved []colorant.Name
	capacity int
	bpc      int
	planar   bool

	autoSpots    AutoSpotPolicy
	budgetPolicy BudgetPolicy

	alloc func(n int) ([]byte, error)
	host  Host
	log   *slog.Logger

	st *state
}

// state is the part of a registry which changes over time.
type state struct {
	spots     [][]byte // owned by the registry, never modified
	order     []int    // explicit order: component -> slot
	maxSeps   int      // 0 if unset
	pageSpots Budget
	equiv     *equiv.Cache
	layout    Layout
}

func (s *state) clone() *state {
	return &state{
		spots:     slices.Clone(s.spots),
		order:     slices.Clone(s.order),
		maxSeps:   s.maxSeps,
		pageSpots: s.pageSpots,
		equiv:     s.equiv.Clone(),
		layout:    s.layout,
	}
}

func (s *state) equal(other *state) bool {
	return slices.EqualFunc(s.spots, other.spots, bytes.Equal) &&
		slices.Equal(s.order, other.order) &&
		s.maxSeps == other.maxSeps &&
		s.pageSpots == other.pageSpots &&
		s.equiv.Equal(other.equiv) &&
		s.layout == other.layout
}

// New returns a registry for the given process color model.
func New(process *colorant.Template, opt *Options) (*Registry, error) {
	if process == nil {
		return nil, colorant.RangeError("ProcessColorModel", "missing template")
	}
	if opt == nil {
		opt = &Options{}
	}

	capacity := opt.Capacity
	if capacity == 0 {
		capacity = MaxCapacity
	}
	if capacity < 1 || capacity > MaxCapacity {
		return nil, colorant.RangeError("Capacity",
			fmt.Sprintf("%d not in range 1-%d", capacity, MaxCapacity))
	}

	bpc := opt.BitsPerComponent
	if bpc == 0 {
		bpc = 8
	}
	if bpc < 1 || bpc > 16 {
		return nil, colorant.RangeError("BitsPerComponent",
			fmt.Sprintf("%d not in range 1-16", bpc))
	}

	for i, name := range opt.Reserved {
		_, isProcess := process.Index(name)
		if name == colorant.None || isProcess || slices.Contains(opt.Reserved[:i], name) {
			return nil, colorant.RangeError("Reserved",
				fmt.Sprintf("invalid colorant %q", name.Text()))
		}
	}

	fixed := process.Len() + len(opt.Reserved)
	if fixed > capacity {
		return nil, colorant.RangeError("Capacity",
			fmt.Sprintf("%d fixed colorants exceed capacity %d", fixed, capacity))
	}

	maxComponents := opt.MaxComponents
	if maxComponents == 0 {
		maxComponents = capacity
	}
	if maxComponents < fixed || maxComponents > capacity {
		return nil, colorant.RangeError("MaxComponents",
			fmt.Sprintf("%d not in range %d-%d", maxComponents, fixed, capacity))
	}

	alloc := opt.Alloc
	if alloc == nil {
		alloc = func(n int) ([]byte, error) {
			return make([]byte, n), nil
		}
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Registry{
		process:      process,
		reserved:     slices.Clone(opt.Reserved),
		capacity:     capacity,
		bpc:          bpc,
		planar:       opt.Planar,
		autoSpots:    opt.AutoSpots,
		budgetPolicy: opt.Budget,
		alloc:        alloc,
		host:         opt.Host,
		log:          logger,
	}

	s := &state{
		equiv:  &equiv.Cache{},
		layout: Layout{MaxComponents: maxComponents},
	}
	s.layout = r.layoutFor(s)
	r.st = s
	return r, nil
}

// Process returns the process colorant template.
func (r *Registry) Process() *colorant.Template {
	return r.process
}

// Reserved returns the reserved colorants.
func (r *Registry) Reserved() []colorant.Name {
	return slices.Clone(r.reserved)
}

// Capacity returns the total number of colorants the registry can hold.
func (r *Registry) Capacity() int {
	return r.capacity
}

// BitsPerComponent returns the component depth of device colors.
func (r *Registry) BitsPerComponent() int {
	return r.bpc
}

// Layout returns the current device layout.
func (r *Registry) Layout() Layout {
	return r.st.layout
}

// NumSpots returns the number of spot colorants.
func (r *Registry) NumSpots() int {
	return len(r.st.spots)
}

// Spot returns the name of the j-th spot colorant, in discovery order.
func (r *Registry) Spot(j int) colorant.Name {
	return colorant.Name(r.st.spots[j])
}

// SpotNames returns the names of all spot colorants, in discovery order.
func (r *Registry) SpotNames() []colorant.Name {
	res := make([]colorant.Name, len(r.st.spots))
	for j, buf := range r.st.spots {
		res[j] = colorant.Name(buf)
	}
	return res
}

// SlotName returns the colorant stored in the given physical slot.
func (r *Registry) SlotName(slot int) (colorant.Name, bool) {
	p := r.process.Len()
	switch {
	case slot < 0:
		return "", false
	case slot < p:
		return r.process.Colorant(slot), true
	case slot < p+len(r.st.spots):
		return colorant.Name(r.st.spots[slot-p]), true
	case r.isReserved(slot):
		return r.reserved[slot-r.reservedBase()], true
	}
	return "", false
}

// OrderMap returns the physical slot shown at the given position of the
// separation order.  Without an explicit order, every populated process or
// spot slot is shown at its own position.
func (r *Registry) OrderMap(pos int) (int, bool) {
	s := r.st
	if len(s.order) > 0 {
		if pos < 0 || pos >= len(s.order) {
			return -1, false
		}
		return s.order[pos], true
	}
	if pos < 0 || pos >= r.process.Len()+len(s.spots) {
		return -1, false
	}
	return pos, true
}

// HasOrder reports whether an explicit separation order is in effect.
func (r *Registry) HasOrder() bool {
	return len(r.st.order) > 0
}

// Equivalent returns the approximate CMYK value of the j-th spot colorant.
func (r *Registry) Equivalent(j int) (equiv.CMYK, bool) {
	if j < 0 || j >= len(r.st.spots) {
		return equiv.CMYK{}, false
	}
	return r.st.equiv.Get(j)
}

// SetEquivalent sets the approximate CMYK value of the j-th spot colorant.
func (r *Registry) SetEquivalent(j int, c equiv.CMYK) error {
	if j < 0 || j >= len(r.st.spots) {
		return colorant.RangeError("EquivCMYKColor", fmt.Sprintf("no spot colorant %d", j))
	}
	if !c.Valid() {
		return colorant.RangeError("EquivCMYKColor", fmt.Sprintf("invalid color %v", c))
	}
	r.st.equiv.Set(j, c)
	return nil
}

// InvalidateEquivalent marks the CMYK value of the j-th spot colorant as
// unknown.
func (r *Registry) InvalidateEquivalent(j int) error {
	if j < 0 || j >= len(r.st.spots) {
		return colorant.RangeError("EquivCMYKColor", fmt.Sprintf("no spot colorant %d", j))
	}
	r.st.equiv.Invalidate(j)
	return nil
}

// AllEquivalentsValid reports whether CMYK values are known for all spot
// colorants.
func (r *Registry) AllEquivalentsValid() bool {
	return r.st.equiv.AllValid()
}

// UpdateEquivalents fills in the unknown CMYK values of spot colorants,
// using the values provided by src.  It returns the number of values filled
// in.
func (r *Registry) UpdateEquivalents(src equiv.Source) int {
	count := 0
	for j, buf := range r.st.spots {
		if _, ok := r.st.equiv.Get(j); ok {
			continue
		}
		c, ok := src.Equivalent(colorant.Name(buf))
		if !ok || !c.Valid() {
			continue
		}
		r.st.equiv.Set(j, c)
		count++
	}
	return count
}

// Reset removes all spot colorants, their CMYK values and the separation
// order.  If this changes the device layout, the host is notified.
func (r *Registry) Reset() {
	s := r.st
	prev := s.layout
	s.spots = nil
	s.order = nil
	s.equiv.Reset()
	s.layout = r.layoutFor(s)
	r.log.Debug("spot colorants cleared")

	if s.layout != prev && r.host != nil {
		r.host.Reconfigure(prev, s.layout)
	}
}

// Codec returns a codec for the current device layout.
func (r *Registry) Codec() (*codec.Codec, error) {
	return codec.New(r.st.layout.NumComponents, r.bpc)
}

// EncodeColor packs one intensity per device component into a device color
// index.
func (r *Registry) EncodeColor(colors []codec.Intensity) (codec.Index, error) {
	c, err := r.Codec()
	if err != nil {
		return codec.NoColor, err
	}
	if len(colors) != c.NumComponents() {
		return codec.NoColor, colorant.RangeError("EncodeColor",
			fmt.Sprintf("%d values for %d components", len(colors), c.NumComponents()))
	}
	return c.Encode(colors), nil
}

// DecodeColor unpacks a device color index into one intensity per device
// component.
func (r *Registry) DecodeColor(idx codec.Index) ([]codec.Intensity, error) {
	c, err := r.Codec()
	if err != nil {
		return nil, err
	}
	return c.Decode(idx), nil
}

func (r *Registry) reservedBase() int {
	return r.capacity - len(r.reserved)
}

func (r *Registry) isReserved(slot int) bool {
	return len(r.reserved) > 0 && slot >= r.reservedBase() && slot < r.capacity
}

// spotRoom returns the largest possible number of spot colorants.
func (r *Registry) spotRoom() int {
	return r.capacity - r.process.Len() - len(r.reserved)
}

// maxComponents returns the number of components the device can image,
// taking MaxSeparations into account.
func (r *Registry) maxComponents(s *state) int {
	if s.maxSeps > 0 {
		return r.process.Len() + s.maxSeps + len(r.reserved)
	}
	return s.layout.MaxComponents
}

// layoutFor computes the device layout for s.
func (r *Registry) layoutFor(s *state) Layout {
	p := r.process.Len()
	numRes := len(r.reserved)

	l := s.layout
	l.MaxComponents = r.maxComponents(s)
	if len(s.order) > 0 {
		l.NumComponents = len(s.order)
	} else if n, ok := s.pageSpots.Count(); ok {
		l.NumComponents = p + n
	} else {
		l.NumComponents = l.MaxComponents - numRes
	}
	l.NumComponents += numRes
	l.NumComponents = min(l.NumComponents, l.MaxComponents)
	l.NumComponents = max(l.NumComponents, 1)

	if r.planar && l.NumComponents > l.NumPlanes {
		l.NumPlanes = l.NumComponents
	}
	l.Depth = r.depth(l)
	return l
}

func (r *Registry) depth(l Layout) int {
	if l.NumPlanes > 0 {
		return codec.Depth(l.NumPlanes, r.bpc)
	}
	return codec.Depth(l.NumComponents, r.bpc)
}
