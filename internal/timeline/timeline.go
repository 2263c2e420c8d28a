// Package timeline holds the short history of thermodynamics shown next to
// the simulation.
package timeline

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type Event struct {
	Year  int    `yaml:"year"`
	Title string `yaml:"title"`
	Desc  string `yaml:"desc"`
}

var builtin = []Event{
	{1824, "Sadi Carnot", "Introduced the Carnot cycle and the upper bound on the efficiency of heat engines."},
	{1850, "Rudolf Clausius", "Connected heat and work and stated the two fundamental laws of thermodynamics."},
	{1873, "Ludwig Boltzmann", "Tied entropy to statistics with S = k ln W, the start of statistical mechanics."},
	{1905, "Thermal concepts broaden", "Thermodynamics applied to engines and to the new physics of the century."},
	{1950, "Engineering practice", "T-S diagrams and steam property tables become standard design tools."},
	{2000, "Teaching simulators", "Interactive tools appear for explaining entropy and thermodynamics."},
}

const defaultExplanation = "Our understanding of thermodynamics kept growing and found its way into many modern applications."

var explanations = map[int]string{
	1824: "Carnot proposed an idealized heat cycle, later used to derive the limiting efficiency now called the Carnot efficiency.",
	1850: "Clausius coined the term \"entropy\" and laid out the relations between heat and work.",
	1873: "Boltzmann showed that entropy can be read numerically as the count of microstates W.",
	1950: "Engineers used T-s and P-v diagrams to design steam power plants and refrigeration.",
}

// Events returns a copy of the built-in events in chronological order.
func Events() []Event {
	out := make([]Event, len(builtin))
	copy(out, builtin)
	return out
}

// Explain returns the extra note for a year, or a general note when the year
// has none of its own.
func Explain(year int) string {
	if s, ok := explanations[year]; ok {
		return s
	}
	return defaultExplanation
}

func Find(events []Event, year int) (Event, bool) {
	for _, ev := range events {
		if ev.Year == year {
			return ev, true
		}
	}
	return Event{}, false
}

// Heading is the one-line label shown when an event is selected.
func Heading(ev Event) string {
	return fmt.Sprintf("%d — %s", ev.Year, ev.Title)
}

// Describe renders the full popup text for an event.
func Describe(ev Event) string {
	return fmt.Sprintf("%s — %d\n\n%s\n\nMore: %s", ev.Title, ev.Year, ev.Desc, Explain(ev.Year))
}

// Load reads a YAML list of events, sorted by year on return.
func Load(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var events []Event
	if err := yaml.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse timeline %s: %w", path, err)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Year < events[j].Year })
	return events, nil
}
