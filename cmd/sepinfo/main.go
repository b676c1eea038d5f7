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

// Sepinfo shows how a raster output device with spot colorants would map
// colorant names to device components.
//
// Usage:
//
//	sepinfo [options] [colorant ...]
//
// The device is configured using the given options, the colorants listed
// on the command line are resolved in order, and the resulting device
// parameters and component layout are printed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
	"seehuhn.de/go/postscript"

	"seehuhn.de/go/colorant"
	"seehuhn.de/go/colorant/devn"
	"seehuhn.de/go/colorant/equiv"
	"seehuhn.de/go/colorant/psparam"
)

func main() {
	model := flag.String("model", "cmyk", "process color model: gray, rgb or cmyk")
	iccFile := flag.String("icc", "", "take the process color model from an ICC output profile")
	capacity := flag.Int("capacity", devn.MaxCapacity, "total number of colorants")
	bpc := flag.Int("bpc", 8, "bits per component")
	maxComponents := flag.Int("max-components", 0, "number of components the device can image (default: capacity)")
	reserved := flag.String("reserved", "", "comma-separated list of reserved colorants")
	autoSpots := flag.String("auto-spots", "enable", "policy for new spot colorants: enable, none or allow-extra")
	limit := flag.Bool("limit", false, "stop adding spot colorants when the page budget is used up")
	spots := flag.String("spots", "", "comma-separated list of SeparationColorNames")
	order := flag.String("order", "", "comma-separated SeparationOrder")
	maxSeps := flag.Int("max-seps", 0, "MaxSeparations")
	pageSpots := flag.Int("page-spots", -1, "PageSpotColors, or -1 if unknown")
	named := flag.Bool("named", false, "approximate spot colorants named after SVG colors")
	swatch := flag.String("swatch", "", "write a TIFF swatch of the composite colors to `file`")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	logger := newLogger(*logLevel, *logFormat, os.Stderr)

	process, err := processTemplate(*model, *iccFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	policy, err := parsePolicy(*autoSpots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opt := &devn.Options{
		Capacity:         *capacity,
		BitsPerComponent: *bpc,
		Reserved:         splitNames(*reserved),
		MaxComponents:    *maxComponents,
		AutoSpots:        policy,
		Host:             &logHost{log: logger},
		Logger:           logger,
	}
	if *limit {
		opt.Budget = devn.BudgetLimit
	}
	r, err := devn.New(process, opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	params := postscript.Dict{}
	if set["spots"] {
		params[devn.ParamSeparationColorNames] = nameArray(*spots)
	}
	if set["order"] {
		params[devn.ParamSeparationOrder] = nameArray(*order)
	}
	if set["max-seps"] {
		params[devn.ParamMaxSeparations] = postscript.Integer(*maxSeps)
	}
	if set["page-spots"] {
		params[devn.ParamPageSpotColors] = postscript.Integer(*pageSpots)
	}
	if _, err := psparam.Put(r, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, arg := range flag.Args() {
		name := colorant.Name(arg)
		res, err := r.Resolve(name, colorant.KindSpot)
		if err != nil {
			fmt.Printf("%s: %v\n", name.Text(), err)
			continue
		}
		fmt.Printf("%s: %s, slot %d, component %d\n", name.Text(), res.Status, res.Slot, res.Component)
	}

	if *named {
		n := r.UpdateEquivalents(equiv.NamedColors)
		logger.Info("named colors", slog.Int("matched", n))
	}

	fmt.Println(psparam.Format(psparam.Get(r)))
	printComponents(r, term.IsTerminal(int(os.Stdout.Fd())))

	if *swatch != "" {
		err := writeSwatchFile(*swatch, r.CompositeMap())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing swatch: %v\n", err)
			os.Exit(1)
		}
	}
}

func processTemplate(model, iccFile string) (*colorant.Template, error) {
	if iccFile != "" {
		profile, err := os.ReadFile(iccFile)
		if err != nil {
			return nil, err
		}
		return colorant.TemplateForICC(profile)
	}
	switch strings.ToLower(model) {
	case "gray":
		return colorant.Gray, nil
	case "rgb":
		return colorant.RGB, nil
	case "cmyk":
		return colorant.CMYK, nil
	default:
		return nil, fmt.Errorf("unknown color model %q", model)
	}
}

func parsePolicy(s string) (devn.AutoSpotPolicy, error) {
	switch s {
	case "enable":
		return devn.AutoSpotsEnable, nil
	case "none":
		return devn.AutoSpotsNone, nil
	case "allow-extra":
		return devn.AutoSpotsAllowExtra, nil
	default:
		return 0, fmt.Errorf("unknown auto-spot policy %q", s)
	}
}

// splitNames splits a comma-separated list of colorant names.
func splitNames(s string) []colorant.Name {
	if s == "" {
		return nil
	}
	var names []colorant.Name
	for _, part := range strings.Split(s, ",") {
		names = append(names, colorant.Name(strings.TrimSpace(part)))
	}
	return names
}

func nameArray(s string) postscript.Array {
	a := postscript.Array{}
	for _, name := range splitNames(s) {
		a = append(a, postscript.String(name))
	}
	return a
}

func printComponents(r *devn.Registry, header bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if header {
		fmt.Fprintln(w, "COMP\tCOLORANT\tC\tM\tY\tK")
	}
	for comp, c := range r.CompositeMap() {
		name, ok := r.ComponentColorant(comp)
		label := name.Text()
		if !ok {
			label = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", comp, label,
			percent(c.C), percent(c.M), percent(c.Y), percent(c.K))
	}
	w.Flush()
}

func percent(x equiv.Frac) string {
	return fmt.Sprintf("%.0f%%", 100*float64(x)/float64(equiv.FracOne))
}

// logHost reports device reconfigurations.
type logHost struct {
	log *slog.Logger
}

func (h *logHost) Reconfigure(prev, cur devn.Layout) {
	h.log.Info("device reconfigured",
		slog.Int("components", cur.NumComponents),
		slog.Int("prevComponents", prev.NumComponents),
		slog.Int("depth", cur.Depth))
}
