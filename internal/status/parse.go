package status

import (
	"strings"
	"unicode/utf8"
)

// Column titles of the engine's default tabular listing, in display order.
// The header line is used to compute column offsets, so the parser tolerates
// varying column widths between engine versions.
var psColumns = []string{"CONTAINER ID", "IMAGE", "COMMAND", "CREATED", "STATUS", "PORTS", "NAMES"}

// Parse converts the raw tabular output of the engine's container listing
// (e.g. `docker ps -a`) into ServiceStatus values. The text interface is the
// only status channel the engine CLI guarantees, so the brittle contract is
// isolated here and covered by tests with literal fixtures.
//
// Lines before the header and malformed rows are skipped rather than failing
// the whole parse.
func Parse(raw string) []ServiceStatus {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	var offsets []int
	var out []ServiceStatus
	for _, line := range lines {
		if offsets == nil {
			offsets = headerOffsets(line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if s, ok := parseRow(line, offsets); ok {
			out = append(out, s)
		}
	}
	return out
}

// headerOffsets returns the rune offset of each column title in the header
// line, or nil if the line is not a recognizable header. Rune offsets are
// used because the engine pads by display column and truncates cell values
// with a multi-byte ellipsis.
func headerOffsets(line string) []int {
	offsets := make([]int, 0, len(psColumns))
	prev := -1
	for _, col := range psColumns {
		i := strings.Index(line, col)
		if i <= prev {
			return nil
		}
		offsets = append(offsets, utf8.RuneCountInString(line[:i]))
		prev = i
	}
	return offsets
}

func parseRow(line string, offsets []int) (ServiceStatus, bool) {
	runes := []rune(line)
	col := func(i int) string {
		start := offsets[i]
		if start >= len(runes) {
			return ""
		}
		end := len(runes)
		if i+1 < len(offsets) && offsets[i+1] < end {
			end = offsets[i+1]
		}
		return strings.TrimSpace(string(runes[start:end]))
	}
	name := col(6)
	if name == "" {
		return ServiceStatus{}, false
	}
	s := ServiceStatus{
		Name:  name,
		State: stateFromStatusColumn(col(4)),
	}
	if ports := col(5); ports != "" {
		for _, p := range strings.Split(ports, ",") {
			if p = strings.TrimSpace(p); p != "" {
				s.Ports = append(s.Ports, p)
			}
		}
	}
	return s, true
}

// stateFromStatusColumn maps the free-form STATUS text to a State.
// "Up 2 hours (healthy)" -> running, "Exited (0) 3 days ago" -> stopped.
func stateFromStatusColumn(text string) State {
	switch {
	case text == "":
		return StateUnknown
	case strings.HasPrefix(text, "Up"):
		return StateRunning
	case strings.HasPrefix(text, "Exited"),
		strings.HasPrefix(text, "Created"),
		strings.HasPrefix(text, "Dead"):
		return StateStopped
	default:
		return StateUnknown
	}
}
