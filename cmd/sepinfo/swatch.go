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

package main

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/tiff"

	"seehuhn.de/go/colorant/equiv"
)

const swatchSize = 32

// swatchImage returns an image with one square of the composite color for
// every device component.
func swatchImage(comps []equiv.CMYK) *image.CMYK {
	img := image.NewCMYK(image.Rect(0, 0, max(len(comps), 1)*swatchSize, swatchSize))
	for i, c := range comps {
		col := color.CMYK{C: toByte(c.C), M: toByte(c.M), Y: toByte(c.Y), K: toByte(c.K)}
		for y := 0; y < swatchSize; y++ {
			for x := i * swatchSize; x < (i+1)*swatchSize; x++ {
				img.SetCMYK(x, y, col)
			}
		}
	}
	return img
}

func toByte(x equiv.Frac) uint8 {
	x = min(max(x, 0), equiv.FracOne)
	return uint8((int(x)*255 + int(equiv.FracOne)/2) / int(equiv.FracOne))
}

func writeSwatch(w io.Writer, comps []equiv.CMYK) error {
	return tiff.Encode(w, swatchImage(comps), &tiff.Options{Compression: tiff.Deflate})
}

func writeSwatchFile(fname string, comps []equiv.CMYK) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = writeSwatch(f, comps)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
