package viewer

import "math"

// ActiveZone is the share of the viewport, from the top, in which a heading
// counts as being read. It mirrors an intersection root margin of
// "0px 0px -60% 0px".
const ActiveZone = 0.4

// Progress returns how far the reader is through the content region, 0-100.
//
//	y <= top              -> 0
//	y >= top + h - H      -> 100
//	otherwise             -> round((y - top) / (h - H) * 100)
func Progress(scrollY, innerHeight, contentTop, contentHeight float64) int {
	span := contentHeight - innerHeight
	switch {
	case scrollY <= contentTop:
		return 0
	case scrollY >= contentTop+span:
		return 100
	}
	if span == 0 {
		span = 1
	}
	return int(math.Round((scrollY - contentTop) / span * 100))
}

// inActiveZone reports whether a box at absolute top with height overlaps
// [scrollY, scrollY + ActiveZone*innerHeight]. Touching edges count.
func inActiveZone(top, height, scrollY, innerHeight float64) bool {
	rel := top - scrollY
	return rel <= ActiveZone*innerHeight && rel+height >= 0
}
