package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/reoring/jsonio/codec"
)

func TestParseID(t *testing.T) {
	for _, id := range codec.IDs() {
		got, ok := codec.ParseID(id.String())
		if !ok || got != id {
			t.Fatalf("ParseID(%q) = %v, %v", id.String(), got, ok)
		}
	}
	if got, ok := codec.ParseID("  OrJSON "); !ok || got != codec.OrJSON {
		t.Fatalf("case-insensitive parse failed: %v %v", got, ok)
	}
	if _, ok := codec.ParseID("bson"); ok {
		t.Fatalf("unknown name accepted")
	}
}

func TestSizeLimit(t *testing.T) {
	want := map[codec.ID]int64{
		codec.JSON:       150 << 20,
		codec.OrJSON:     250 << 20,
		codec.UJSON:      200 << 20,
		codec.RapidJSON:  50 << 20,
		codec.SimpleJSON: 50 << 20,
		codec.Custom:     1<<31 - 1,
	}
	for id, n := range want {
		if got := id.SizeLimit(); got != n {
			t.Errorf("%s: SizeLimit() = %d, want %d", id, got, n)
		}
	}
	if got := codec.ID(42).SizeLimit(); got != codec.Custom.SizeLimit() {
		t.Errorf("invalid id limit = %d", got)
	}
}

func TestID_Text(t *testing.T) {
	var cfg struct {
		Backend codec.ID `json:"backend"`
	}
	if err := json.Unmarshal([]byte(`{"backend":"rapidjson"}`), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != codec.RapidJSON {
		t.Fatalf("got %v", cfg.Backend)
	}
	out, err := json.Marshal(cfg)
	if err != nil || string(out) != `{"backend":"rapidjson"}` {
		t.Fatalf("marshal: %s %v", out, err)
	}
	if err := json.Unmarshal([]byte(`{"backend":"nope"}`), &cfg); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, err := codec.ID(-1).MarshalText(); err == nil {
		t.Fatalf("expected error for invalid id")
	}
	if s := codec.ID(9).String(); s != "codec.ID(9)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestOptions_Strict(t *testing.T) {
	if (codec.Options{UseNumber: true, Indent: " "}).Strict() {
		t.Fatal("non-strict options reported strict")
	}
	if !(codec.Options{DisallowDuplicateKeys: true}).Strict() || !(codec.Options{MaxDepth: 1}).Strict() {
		t.Fatal("strict options not reported")
	}
}
