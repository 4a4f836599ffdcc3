// Package metromap holds the transport map that the viewer pans over.
package metromap

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
)

// Colour is a 0xRRGGBB colour, written as "#rrggbb" in JSON.
type Colour uint32

func (c Colour) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("#%06x", uint32(c)))
}

func (c *Colour) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || v > 0xffffff {
		return fmt.Errorf("invalid colour %q", s)
	}
	*c = Colour(v)
	return nil
}

type Station struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s Station) Point() image.Point {
	return image.Pt(s.X, s.Y)
}

type Line struct {
	Name     string    `json:"name"`
	Colour   Colour    `json:"colour"`
	Stations []Station `json:"stations"`
}

// Segment is the track between two consecutive stations of a line.
type Segment struct {
	Line     *Line
	From, To Station
}

// Bounds returns the smallest rectangle containing both ends.
func (s Segment) Bounds() image.Rectangle {
	r := image.Rectangle{Min: s.From.Point(), Max: s.To.Point()}.Canon()
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

type Map struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Lines  []Line `json:"lines"`
}

// Load reads and validates a map from a JSON file.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode reads and validates a map in JSON form.
func Decode(r io.Reader) (*Map, error) {
	var m Map
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Map) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("map has no name")
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map %q has invalid size %dx%d", m.Name, m.Width, m.Height)
	}
	bounds := image.Rect(0, 0, m.Width, m.Height)
	for _, l := range m.Lines {
		if l.Name == "" {
			return fmt.Errorf("map %q has a line without a name", m.Name)
		}
		for _, s := range l.Stations {
			if !s.Point().In(bounds) {
				return fmt.Errorf("station %q of line %q at (%d, %d) is outside the map", s.Name, l.Name, s.X, s.Y)
			}
		}
	}
	return nil
}

// Size returns the map extent in content units.
func (m *Map) Size() (width, height int) {
	return m.Width, m.Height
}

// Stations yields every station of every line. Interchanges appear once per
// line.
func (m *Map) Stations() iter.Seq2[*Line, Station] {
	return func(yield func(*Line, Station) bool) {
		for i := range m.Lines {
			l := &m.Lines[i]
			for _, s := range l.Stations {
				if !yield(l, s) {
					return
				}
			}
		}
	}
}

func (m *Map) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for i := range m.Lines {
			l := &m.Lines[i]
			for j := 1; j < len(l.Stations); j++ {
				if !yield(Segment{Line: l, From: l.Stations[j-1], To: l.Stations[j]}) {
					return
				}
			}
		}
	}
}

// StationsIn returns the stations inside r, without repeating interchanges.
func (m *Map) StationsIn(r image.Rectangle) []Station {
	var out []Station
	seen := make(map[Station]struct{})
	for _, s := range m.Stations() {
		if !s.Point().In(r) {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// FindStation looks a station up by name, ignoring case.
func (m *Map) FindStation(name string) (Station, bool) {
	for _, s := range m.Stations() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Station{}, false
}

// StationNames returns the distinct station names in map order.
func (m *Map) StationNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, s := range m.Stations() {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}
		names = append(names, s.Name)
	}
	return names
}
