package timeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEventsChronological(t *testing.T) {
	events := Events()
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i-1].Year >= events[i].Year {
			t.Errorf("events out of order at %d", i)
		}
	}

	events[0].Title = "changed"
	if Events()[0].Title == "changed" {
		t.Error("Events must return a copy")
	}
}

func TestExplain(t *testing.T) {
	for _, year := range []int{1824, 1850, 1873, 1950} {
		if Explain(year) == defaultExplanation {
			t.Errorf("year %d should have its own explanation", year)
		}
	}
	for _, year := range []int{1905, 2000, 1} {
		if Explain(year) != defaultExplanation {
			t.Errorf("year %d should fall back to the default explanation", year)
		}
	}
}

func TestFindAndDescribe(t *testing.T) {
	ev, ok := Find(Events(), 1873)
	if !ok {
		t.Fatal("1873 not found")
	}
	if Heading(ev) != "1873 — Ludwig Boltzmann" {
		t.Errorf("unexpected heading %q", Heading(ev))
	}
	text := Describe(ev)
	if !strings.Contains(text, ev.Desc) || !strings.Contains(text, Explain(1873)) {
		t.Errorf("description missing parts: %q", text)
	}

	if _, ok := Find(Events(), 1999); ok {
		t.Error("unexpected event for 1999")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	data := "- year: 1900\n  title: B\n  desc: second\n- year: 1800\n  title: A\n  desc: first\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	events, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 || events[0].Year != 1800 {
		t.Errorf("unexpected events %+v", events)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
