package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

// ParseBFF parses the line-oriented board format:
//
//	# comment
//	GRID START
//	o B o
//	o o o
//	GRID STOP
//	A 2          block counts: A reflect, B opaque, C refract
//	L 2 7 1 -1   ray: x y dx dy
//	P 3 0        target: x y
//
// Blank lines and lines starting with '#' are ignored everywhere.
func ParseBFF(data []byte, source string) (Level, error) {
	spec := core.BoardSpec{
		Source: source,
		Blocks: make(map[core.BlockKind]int),
	}
	fail := func(line int, format string, args ...any) error {
		return &core.ParseError{Source: source, Line: line, Reason: fmt.Sprintf(format, args...)}
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	inGrid, sawGrid := false, false
	gridStart := 0
	line := 0

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if inGrid {
			if strings.EqualFold(text, "GRID STOP") {
				inGrid = false
				continue
			}
			spec.Rows = append(spec.Rows, text)
			continue
		}

		if strings.EqualFold(text, "GRID START") {
			if sawGrid {
				return Level{}, fail(line, "second GRID START")
			}
			inGrid, sawGrid = true, true
			gridStart = line
			continue
		}

		fields := strings.Fields(text)
		nums, err := atois(fields[1:])
		if err != nil {
			return Level{}, fail(line, "%s: %v", fields[0], err)
		}

		switch fields[0] {
		case "A", "B", "C":
			if len(nums) != 1 {
				return Level{}, fail(line, "block line wants 1 count, got %d", len(nums))
			}
			kind, _ := core.ParseBlockKind(fields[0])
			spec.Blocks[kind] += nums[0]
		case "L":
			if len(nums) != 4 {
				return Level{}, fail(line, "ray line wants x y dx dy, got %d values", len(nums))
			}
			spec.Rays = append(spec.Rays, core.NewRay(core.P(nums[0], nums[1]), core.P(nums[2], nums[3])))
		case "P":
			if len(nums) != 2 {
				return Level{}, fail(line, "target line wants x y, got %d values", len(nums))
			}
			spec.Targets = append(spec.Targets, core.P(nums[0], nums[1]))
		default:
			return Level{}, fail(line, "unknown directive %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return Level{}, fmt.Errorf("reading %s: %w", source, err)
	}

	if inGrid {
		return Level{}, fail(gridStart, "GRID START without GRID STOP")
	}
	if !sawGrid {
		return Level{}, fail(0, "no GRID section")
	}

	return Level{Spec: spec}, nil
}

func atois(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad integer %q", f)
		}
		out[i] = n
	}
	return out, nil
}
