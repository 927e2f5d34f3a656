package formats

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/andastra/andastra/aerrors"
)

// Room, Track, and Obstacle are one positioned model entry each
// ("<model> <x> <y> <z>" per line, spec.md §6).
type Room struct {
	Model string
	X, Y, Z float64
}

type Track struct {
	Model   string
	X, Y, Z float64
}

type Obstacle struct {
	Model   string
	X, Y, Z float64
}

// DoorHook is one "<room> <door> <8 floats...>" entry. Producers emit
// either a 10-token line (2 names + 8 floats) or a 15-token line (2
// names + 8 floats + 5 trailing floats); Decode accepts both. The long
// form's trailing 5 floats are kept in Extra (nil for the short form);
// Encode ignores Extra and always writes the 10-token form.
type DoorHook struct {
	Room   string
	Door   string
	Fields [8]float64
	Extra  []float64
}

// Layout is a decoded LYT: the module's rooms, camera tracks, path
// obstacles, and door hooks (spec.md §6).
type Layout struct {
	Rooms     []Room
	Tracks    []Track
	Obstacles []Obstacle
	DoorHooks []DoorHook
}

// Decode parses an LYT text document: "beginlayout", optional
// roomcount/trackcount/obstaclecount/doorhookcount sections each
// followed by N token lines, and a "donelayout" terminator. Tokens are
// matched case-insensitively (spec.md §6).
func Decode(data []byte) (*Layout, error) {
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	var lines []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 || !strings.EqualFold(lines[0], "beginlayout") {
		return nil, aerrors.NewParseError("formats.Decode", aerrors.BadSignature, nil)
	}

	l := &Layout{}
	i := 1
	for i < len(lines) {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			i++
			continue
		}
		keyword := strings.ToLower(fields[0])
		if keyword == "donelayout" {
			return l, nil
		}

		if len(fields) < 2 {
			return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, nil)
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, err)
		}
		i++

		switch keyword {
		case "roomcount":
			for n := 0; n < count; n, i = n+1, i+1 {
				if i >= len(lines) {
					return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, nil)
				}
				room, err := parseModelLine(lines[i])
				if err != nil {
					return nil, err
				}
				l.Rooms = append(l.Rooms, Room(room))
			}
		case "trackcount":
			for n := 0; n < count; n, i = n+1, i+1 {
				if i >= len(lines) {
					return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, nil)
				}
				t, err := parseModelLine(lines[i])
				if err != nil {
					return nil, err
				}
				l.Tracks = append(l.Tracks, Track(t))
			}
		case "obstaclecount":
			for n := 0; n < count; n, i = n+1, i+1 {
				if i >= len(lines) {
					return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, nil)
				}
				o, err := parseModelLine(lines[i])
				if err != nil {
					return nil, err
				}
				l.Obstacles = append(l.Obstacles, Obstacle(o))
			}
		case "doorhookcount":
			for n := 0; n < count; n, i = n+1, i+1 {
				if i >= len(lines) {
					return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, nil)
				}
				dh, err := parseDoorHookLine(lines[i])
				if err != nil {
					return nil, err
				}
				l.DoorHooks = append(l.DoorHooks, dh)
			}
		default:
			return nil, aerrors.NewParseError("formats.Decode", aerrors.BadSignature, nil)
		}
	}

	return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, nil)
}

type modelLine struct {
	Model   string
	X, Y, Z float64
}

func parseModelLine(line string) (modelLine, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return modelLine{}, aerrors.NewParseError("formats.parseModelLine", aerrors.TruncatedSection, nil)
	}
	x, y, z, err := parseXYZ(fields[1:4])
	if err != nil {
		return modelLine{}, err
	}
	return modelLine{Model: fields[0], X: x, Y: y, Z: z}, nil
}

func parseXYZ(tokens []string) (x, y, z float64, err error) {
	vals := make([]float64, 3)
	for i, tok := range tokens {
		vals[i], err = strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, 0, 0, aerrors.NewParseError("formats.parseXYZ", aerrors.TruncatedSection, err)
		}
	}
	return vals[0], vals[1], vals[2], nil
}

// parseDoorHookLine accepts the 10-token ("room door f0..f7") or
// 15-token ("room door f0..f7 g0..g4") line forms (spec.md §9).
func parseDoorHookLine(line string) (DoorHook, error) {
	fields := strings.Fields(line)
	if len(fields) != 10 && len(fields) != 15 {
		return DoorHook{}, aerrors.NewParseError("formats.parseDoorHookLine", aerrors.TruncatedSection, nil)
	}
	dh := DoorHook{Room: fields[0], Door: fields[1]}
	for i := 0; i < 8; i++ {
		v, err := strconv.ParseFloat(fields[2+i], 64)
		if err != nil {
			return DoorHook{}, aerrors.NewParseError("formats.parseDoorHookLine", aerrors.TruncatedSection, err)
		}
		dh.Fields[i] = v
	}
	if len(fields) == 15 {
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(fields[10+i], 64)
			if err != nil {
				return DoorHook{}, aerrors.NewParseError("formats.parseDoorHookLine", aerrors.TruncatedSection, err)
			}
			dh.Extra = append(dh.Extra, v)
		}
	}
	return dh, nil
}

// Encode serializes l back to LYT text, always in the short (10-token)
// door-hook form.
func Encode(l *Layout) []byte {
	var b strings.Builder
	b.WriteString("beginlayout\n")

	fmt.Fprintf(&b, "roomcount %d\n", len(l.Rooms))
	for _, r := range l.Rooms {
		fmt.Fprintf(&b, "%s %s %s %s\n", r.Model, fmtF(r.X), fmtF(r.Y), fmtF(r.Z))
	}
	fmt.Fprintf(&b, "trackcount %d\n", len(l.Tracks))
	for _, t := range l.Tracks {
		fmt.Fprintf(&b, "%s %s %s %s\n", t.Model, fmtF(t.X), fmtF(t.Y), fmtF(t.Z))
	}
	fmt.Fprintf(&b, "obstaclecount %d\n", len(l.Obstacles))
	for _, o := range l.Obstacles {
		fmt.Fprintf(&b, "%s %s %s %s\n", o.Model, fmtF(o.X), fmtF(o.Y), fmtF(o.Z))
	}
	fmt.Fprintf(&b, "doorhookcount %d\n", len(l.DoorHooks))
	for _, dh := range l.DoorHooks {
		fmt.Fprintf(&b, "%s %s", dh.Room, dh.Door)
		for _, v := range dh.Fields {
			fmt.Fprintf(&b, " %s", fmtF(v))
		}
		b.WriteString("\n")
	}

	b.WriteString("donelayout\n")
	return []byte(b.String())
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
