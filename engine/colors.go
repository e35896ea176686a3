package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var hexColorRe = regexp.MustCompile(`^#?([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

type hsl struct {
	H float64 // degrees, 0..360
	S float64 // 0..1
	L float64 // 0..1
}

// hexToHSL parses a 6 digit hex color, with or without leading '#'.
// Anything else (named colors, short hex) is not a parseable color.
func hexToHSL(hex string) (hsl, bool) {
	m := hexColorRe.FindStringSubmatch(hex)
	if m == nil {
		return hsl{}, false
	}

	rv, _ := strconv.ParseInt(m[1], 16, 32)
	gv, _ := strconv.ParseInt(m[2], 16, 32)
	bv, _ := strconv.ParseInt(m[3], 16, 32)
	r := float64(rv) / 255
	g := float64(gv) / 255
	b := float64(bv) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2
	var h, s float64

	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		case b:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return hsl{H: h * 360, S: s, L: l}, true
}

// ColorHarmony scores how well two colors work together on a 0..1 scale
// using hue distance on the color wheel. Unparseable colors score a
// noncommittal 0.5 so odd user input never sinks an outfit.
func ColorHarmony(color1, color2 string) float64 {
	hsl1, ok1 := hexToHSL(color1)
	hsl2, ok2 := hexToHSL(color2)
	if !ok1 || !ok2 {
		return 0.5
	}

	// same color = perfect match
	if strings.EqualFold(color1, color2) {
		return 1.0
	}

	// neutrals (low saturation) go with everything
	if hsl1.S < 0.2 || hsl2.S < 0.2 {
		return 0.9
	}

	hueDiff := math.Abs(hsl1.H - hsl2.H)
	normalized := math.Min(hueDiff, 360-hueDiff)

	// complementary, opposite on the wheel
	if normalized > 150 && normalized < 210 {
		return 0.8
	}
	// analogous, close on the wheel
	if normalized < 30 {
		return 0.9
	}
	// triadic, 120 degrees apart
	if math.Abs(normalized-120) < 20 {
		return 0.7
	}

	return 0.4
}

// IsNeutralColor reports whether a color is a low saturation neutral.
// Unparseable colors are not considered neutral.
func IsNeutralColor(color string) bool {
	c, ok := hexToHSL(color)
	if !ok {
		return false
	}
	return c.S < 0.2
}

// colorSetCompatibility takes the best pairwise harmony across two color
// lists. An item with no colors recorded is treated as a wildcard 0.5.
func colorSetCompatibility(colors1, colors2 []string) float64 {
	if len(colors1) == 0 || len(colors2) == 0 {
		return 0.5
	}

	best := 0.0
	for _, c1 := range colors1 {
		for _, c2 := range colors2 {
			if h := ColorHarmony(c1, c2); h > best {
				best = h
			}
		}
	}
	return best
}
