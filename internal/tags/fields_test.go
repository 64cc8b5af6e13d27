package tags

import (
	"errors"
	"strings"
	"testing"

	"mediakit/internal/services"
)

func TestParseFieldsKeepsOrderAndCoerces(t *testing.T) {
	fields, err := ParseFields(`{"title": "My Song", "year": 2023, "live": true, "rating": 4.50, "extra": null, "tags": ["a", "b"], "meta": {"k": 1}}`)
	if err != nil {
		t.Fatalf("ParseFields returned error: %v", err)
	}
	want := Fields{
		{Key: "title", Value: "My Song"},
		{Key: "year", Value: "2023"},
		{Key: "live", Value: "True"},
		{Key: "rating", Value: "4.50"},
		{Key: "extra", Value: "None"},
		{Key: "tags", Value: `["a","b"]`},
		{Key: "meta", Value: `{"k":1}`},
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d: %v", len(want), len(fields), fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("field %d = %#v, want %#v", i, fields[i], want[i])
		}
	}
	if strings.Join(fields.Keys(), ",") != "title,year,live,rating,extra,tags,meta" {
		t.Fatalf("unexpected keys %v", fields.Keys())
	}
}

func TestParseFieldsDuplicateKeyKeepsFirstPosition(t *testing.T) {
	fields, err := ParseFields(`{"artist": "A", "title": "T", "artist": "B"}`)
	if err != nil {
		t.Fatalf("ParseFields returned error: %v", err)
	}
	if len(fields) != 2 || fields[0] != (Field{Key: "artist", Value: "B"}) {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestParseFieldsRejects(t *testing.T) {
	tests := map[string]string{
		"not json":     `{"title": `,
		"garbage":      `title=New`,
		"array":        `["title"]`,
		"string":       `"title"`,
		"empty object": `{}`,
		"trailing":     `{"a": "b"} {"c": "d"}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFields(raw)
			if !errors.Is(err, services.ErrArgumentInvalid) {
				t.Fatalf("expected argument error, got %v", err)
			}
		})
	}
	if _, err := ParseFields(`[1]`); services.UserMessage(err) != notObjectMessage {
		t.Fatalf("unexpected message for array: %q", services.UserMessage(err))
	}
}
