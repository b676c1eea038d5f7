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

// Replicate returns an independent copy of the registry, for use by a
// second thread of rendering.
//
// The copy owns separate storage for all spot colorant names and for the
// CMYK values.  Changes to either registry do not affect the other.  The
// copy has no host; use [Registry.SetHost] to attach one.
func (r *Registry) Replicate() (*Registry, error) {
	s := r.st.clone()
	for j, buf := range s.spots {
		cp, err := r.alloc(len(buf))
		if err != nil || len(cp) < len(buf) {
			return nil, memError(buf, err)
		}
		cp = cp[:len(buf)]
		copy(cp, buf)
		s.spots[j] = cp
	}

	dup := *r
	dup.reserved = r.Reserved()
	dup.host = nil
	dup.st = s
	return &dup, nil
}

// SetHost sets the host which is notified of configuration changes.
// A nil host disables notifications.
func (r *Registry) SetHost(h Host) {
	r.host = h
}
