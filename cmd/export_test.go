package cmd

import (
	"bytes"
	"testing"

	"github.com/theirongolddev/liftlog/internal/model"
)

func sampleArchive() archive {
	return archive{
		Version: archiveVersion,
		Unit:    model.UnitLb,
		Presets: []string{"Squat"},
		Logs: map[string]model.DayLog{
			"2025-09-01": {
				Date:      "2025-09-01",
				Done:      true,
				Focus:     []string{"Legs"},
				Exercises: []model.Exercise{{ID: "a", Name: "Squat", Sets: 5, Reps: 5, Weight: 100}},
			},
		},
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "json"} {
		var buf bytes.Buffer
		if err := encodeArchive(&buf, sampleArchive(), format); err != nil {
			t.Fatalf("encode %s: %v", format, err)
		}
		got, err := decodeArchive(buf.Bytes(), format)
		if err != nil {
			t.Fatalf("decode %s: %v", format, err)
		}
		dl := got.Logs["2025-09-01"]
		if got.Unit != model.UnitLb || !dl.Done || len(dl.Exercises) != 1 || dl.Exercises[0].Weight != 100 {
			t.Fatalf("%s round trip = %+v", format, got)
		}
	}
}

func TestDecodeArchiveRejects(t *testing.T) {
	if _, err := decodeArchive([]byte("version: 99\n"), "yaml"); err == nil {
		t.Fatal("accepted a future archive version")
	}
	if _, err := decodeArchive([]byte("{}"), "toml"); err == nil {
		t.Fatal("accepted unknown format")
	}
	if _, err := decodeArchive([]byte("{"), "json"); err == nil {
		t.Fatal("accepted malformed json")
	}
}
