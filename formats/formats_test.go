package formats

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/contactview/person"
	"github.com/arthur-debert/contactview/store"
	"github.com/arthur-debert/contactview/testutil"
	"github.com/arthur-debert/contactview/types"
)

func sampleRows() []Row {
	return []Row{
		{Row: 0, ID: 3, Label: "Aaron Johns", Section: "A", EmailAddresses: []string{"aaron.johns@example.com"}, Favorite: true},
		{Row: 1, ID: 4, Label: "Arthur Johns", Section: "A", PhoneNumbers: []string{"2345678"}, Presence: types.PresenceOffline},
		{Row: 2, ID: 6, Label: "Joe Johns", Section: "J", Presence: types.PresenceAvailable},
	}
}

func sampleSteps() []Step {
	return []Step{
		{
			Step:  1,
			State: types.FilterState{Type: types.FilterAll, Pattern: "Jo"},
			Events: []types.Event{
				{Kind: types.RangeRemoved, Start: 0, Count: 2, IDs: []types.RecordID{1, 2}},
				{Kind: types.FilterPatternChanged},
			},
			Rows: 3,
		},
	}
}

func TestRegistry(t *testing.T) {
	want := []string{"json", "markdown", "plaintext", "table", "yaml"}
	if diff := cmp.Diff(want, List()); diff != "" {
		t.Errorf("Unexpected formats (-want +got):\n%s", diff)
	}

	if _, err := Get("csv"); err == nil {
		t.Error("Expected an error for an unknown format")
	}

	tests := []struct {
		name   string
		format *Format
	}{
		{"invalid name", &Format{Name: "Bad Name", Rows: JSON.Rows, Steps: JSON.Steps}},
		{"missing renderer", &Format{Name: "half", Rows: JSON.Rows}},
		{"duplicate", &Format{Name: "json", Rows: JSON.Rows, Steps: JSON.Steps}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Register(tt.format); err == nil {
				t.Errorf("Expected Register to fail for %s", tt.name)
			}
		})
	}
}

func TestJSONRows(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON.Rows(&buf, sampleRows()); err != nil {
		t.Fatalf("Rows failed: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(decoded))
	}
	if decoded[1]["presence"] != "offline" {
		t.Errorf("Expected presence offline, got %v", decoded[1]["presence"])
	}
	if decoded[0]["favorite"] != true {
		t.Errorf("Expected favorite, got %v", decoded[0]["favorite"])
	}

	buf.Reset()
	if err := JSON.Rows(&buf, nil); err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("Expected an empty list, got %q", buf.String())
	}
}

func TestYAMLSteps(t *testing.T) {
	var buf bytes.Buffer
	if err := YAML.Steps(&buf, sampleSteps()); err != nil {
		t.Fatalf("Steps failed: %v", err)
	}

	var decoded []struct {
		Step  int `yaml:"step"`
		State struct {
			Type    string `yaml:"type"`
			Pattern string `yaml:"pattern"`
		} `yaml:"state"`
		Events []struct {
			Kind  string           `yaml:"kind"`
			Start int              `yaml:"start"`
			Count int              `yaml:"count"`
			IDs   []types.RecordID `yaml:"ids"`
		} `yaml:"events"`
		Rows int `yaml:"rows"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not YAML: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 || len(decoded[0].Events) != 2 {
		t.Fatalf("Unexpected decoded steps: %+v", decoded)
	}
	if decoded[0].State.Type != "all" || decoded[0].State.Pattern != "Jo" {
		t.Errorf("Unexpected state: %+v", decoded[0].State)
	}
	first := decoded[0].Events[0]
	if first.Kind != "removed" || first.Count != 2 || !cmp.Equal(first.IDs, []types.RecordID{1, 2}) {
		t.Errorf("Unexpected first event: %+v", first)
	}
	if decoded[0].Events[1].Kind != "filter-pattern-changed" {
		t.Errorf("Unexpected second event: %+v", decoded[0].Events[1])
	}
}

func TestTextFormats(t *testing.T) {
	tests := []struct {
		format    *Format
		rowsWant  []string
		stepsWant []string
	}{
		{
			Table,
			[]string{"LABEL", "Aaron Johns", "aaron.johns@example.com", "2345678", "offline"},
			[]string{"step 1", `pattern="Jo"`, "removed [0,1]", "1 2", "filter-pattern-changed", "3 rows"},
		},
		{
			Markdown,
			[]string{"| ROW | ID |", "| --- |", "| 2 | 6 | J | Joe Johns |"},
			[]string{"## Step 1", "| removed [0,1] | 1 2 |", "| filter-pattern-changed |  |"},
		},
		{
			PlainText,
			[]string{"[A]\n", "   0  Aaron Johns *\n", "   1  Arthur Johns\n", "[J]\n"},
			[]string{"step 1: type=all", "  removed [0,1] ids 1 2\n", "  filter-pattern-changed\n", "  => 3 rows\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format.Name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.format.Rows(&buf, sampleRows()); err != nil {
				t.Fatalf("Rows failed: %v", err)
			}
			for _, want := range tt.rowsWant {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected rows output to contain %q, got:\n%s", want, buf.String())
				}
			}

			buf.Reset()
			if err := tt.format.Steps(&buf, sampleSteps()); err != nil {
				t.Fatalf("Steps failed: %v", err)
			}
			for _, want := range tt.stepsWant {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected steps output to contain %q, got:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestNewRow(t *testing.T) {
	s := store.New()
	store.Fill(s, testutil.Contacts(), types.FilterTypes...)

	p := person.Lookup(s, testutil.ID(testutil.JoeJohns))
	got := NewRow(5, p)
	want := Row{
		Row:            5,
		ID:             testutil.ID(testutil.JoeJohns),
		Label:          "Joe Johns",
		Section:        "J",
		EmailAddresses: []string{"joe@examplez.org"},
		Favorite:       true,
		Presence:       types.PresenceAvailable,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unexpected row (-want +got):\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestWriteErrors(t *testing.T) {
	for _, name := range List() {
		format, _ := Get(name)
		if err := format.Rows(failingWriter{}, sampleRows()); err == nil {
			t.Errorf("Expected %s rows to report a write error", name)
		}
	}
}
