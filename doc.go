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

// Package colorant provides the names, process color models and errors
// shared by the separation registry of a raster output device.
//
// A raster device images a small number of colorants, each into its own
// component of the device color.  The colorants of the process color model
// (for example Cyan, Magenta, Yellow and Black) are fixed by a [Template].
// Additional spot colorants are discovered while a page is interpreted, or are
// declared in advance using device parameters.
//
// The subpackages implement the parts of the registry:
//
//	codec    packs colorant intensities into a device color index
//	equiv    caches approximate CMYK values for spot colorants
//	devn     maps colorant names to device components
//	psparam  converts registry settings to and from PostScript device parameters
package colorant
