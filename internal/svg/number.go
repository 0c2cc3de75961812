package svg

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"github.com/woozymasta/svgeo/internal/geom"
)

// ParseFloat parses a single SVG number. A trailing "px" is accepted since
// pixels are user units; any other suffix is an error.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}

	v, n := strconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) {
		return 0, fmt.Errorf("invalid number %q", s)
	}

	return v, nil
}

// ParseNumbers scans every number in s, skipping whitespace, commas and
// any other characters that cannot start a number.
func ParseNumbers(s string) []float64 {
	b := []byte(s)
	var nums []float64

	for i := 0; i < len(b); {
		v, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			i++
			continue
		}
		nums = append(nums, v)
		i += n
	}

	return nums
}

// ParsePoints parses the points attribute of polyline and polygon.
// A trailing unpaired value is dropped.
func ParsePoints(s string) []geom.Vector2 {
	nums := ParseNumbers(s)
	points := make([]geom.Vector2, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		points = append(points, geom.Vec(nums[i], nums[i+1]))
	}
	return points
}

func skipSeparators(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t' || b[i] == '\f') {
		i++
	}
	return i
}

func skipSpaces(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t' || b[i] == '\f') {
		i++
	}
	return i
}
