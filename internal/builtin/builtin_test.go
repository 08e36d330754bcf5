package builtin

import (
	"net/url"
	"testing"
	"time"

	"github.com/aalhour/xdata/internal/recordmodel"
)

func TestDateConverter_RoundTrip(t *testing.T) {
	in := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)

	rec, err := Date.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, _ := rec.Value(recordmodel.MetaClassName); got != "xdata.date" {
		t.Errorf("_meta_classname = %v, want xdata.date", got)
	}

	out, err := Date.Unmarshal(rec)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got, ok := out.(time.Time)
	if !ok {
		t.Fatalf("Unmarshal returned %T, want time.Time", out)
	}
	if !got.Equal(in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestDateConverter_WrongType(t *testing.T) {
	if _, err := Date.Marshal("not a time"); err == nil {
		t.Error("expected error marshalling a non-time.Time value")
	}
}

func TestURLConverter_RoundTrip(t *testing.T) {
	in, _ := url.Parse("https://example.com/path?q=1")

	rec, err := URL.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, _ := rec.Value(recordmodel.MetaClassName); got != "xdata.url" {
		t.Errorf("_meta_classname = %v, want xdata.url", got)
	}

	out, err := URL.Unmarshal(rec)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got, ok := out.(*url.URL)
	if !ok {
		t.Fatalf("Unmarshal returned %T, want *url.URL", out)
	}
	if got.String() != in.String() {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestURLConverter_WrongType(t *testing.T) {
	if _, err := URL.Marshal(42); err == nil {
		t.Error("expected error marshalling a non-*url.URL value")
	}
}

func TestDefaults_Order(t *testing.T) {
	defs := Defaults()
	if len(defs) != 2 {
		t.Fatalf("Defaults() len = %d, want 2", len(defs))
	}
	if defs[0].TypeName() != "xdata.date" || defs[1].TypeName() != "xdata.url" {
		t.Errorf("Defaults() order = %v", defs)
	}
}
