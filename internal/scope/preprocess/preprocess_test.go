package preprocess

import (
	"errors"
	"strings"
	"testing"

	"github.com/dsjohal14/quickspot/internal/scope/record"
	"github.com/dsjohal14/quickspot/internal/scope/textnorm"
)

func rec(fields ...record.Field) *record.Record {
	return record.New(fields...)
}

func f(name string, v any) record.Field {
	return record.Field{Name: name, Value: v}
}

func TestProcessAllFields(t *testing.T) {
	p := New("", nil, nil)

	out, err := p.Process(rec(f("name", "Fish & Chips"), f("price", 4.5), f("desc", "Cod, fried.")))
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	if out.SearchBlob != " fish and chips 45 cod fried" {
		t.Errorf("unexpected search blob %q", out.SearchBlob)
	}
	if out.KeyValue != "fish and chips" {
		t.Errorf("unexpected key value %q", out.KeyValue)
	}
}

func TestProcessSearchOnSubset(t *testing.T) {
	p := New("name", []string{"tags", "name", "missing"}, nil)

	src := rec(f("name", "Apple"), f("colour", "Red"), f("tags", "fruit"))
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	if out.SearchBlob != " fruit apple " {
		t.Errorf("unexpected search blob %q", out.SearchBlob)
	}
	if strings.Contains(out.SearchBlob, "red") {
		t.Error("search blob should not contain fields outside searchOn")
	}
}

func TestProcessLeavesInputUntouched(t *testing.T) {
	p := New("", nil, nil)
	src := rec(f("name", "Apple"))

	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	if src.SearchBlob != "" || src.KeyValue != "" {
		t.Error("input record should not gain derived fields")
	}
	if out == src {
		t.Error("Process() should return a copy")
	}
	if out.GetString("name") != "Apple" {
		t.Errorf("input field value changed: %q", out.GetString("name"))
	}
}

func TestProcessUnstringifiableField(t *testing.T) {
	tests := []struct {
		name     string
		searchOn []string
	}{
		{"all fields", nil},
		{"search on subset", []string{"name", "handler"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("name", tt.searchOn, nil)
			_, err := p.Process(rec(f("name", "Apple"), f("handler", make(chan int))))
			if err == nil {
				t.Fatal("expected error for a value that cannot be stringified")
			}
			if !strings.Contains(err.Error(), `"handler"`) {
				t.Errorf("expected error to name the field, got %v", err)
			}
		})
	}
}

func TestProcessMissingKeyField(t *testing.T) {
	tests := []struct {
		name string
		in   *record.Record
	}{
		{"absent", rec(f("title", "x"))},
		{"null", rec(f("name", nil))},
		{"nested", rec(f("name", map[string]any{"first": "a"}))},
	}

	p := New("name", nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Process(tt.in)
			var mk *MissingKeyFieldError
			if !errors.As(err, &mk) {
				t.Fatalf("expected MissingKeyFieldError, got %v", err)
			}
			if mk.Field != "name" {
				t.Errorf("expected field name, got %s", mk.Field)
			}
		})
	}
}

func TestProcessNumericKey(t *testing.T) {
	p := New("id", nil, nil)
	out, err := p.Process(rec(f("id", 1234)))
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}
	if out.KeyValue != "1234" {
		t.Errorf("expected key value 1234, got %q", out.KeyValue)
	}
}

func TestProcessAllReportsIndex(t *testing.T) {
	p := New("name", nil, nil)

	_, err := p.ProcessAll([]*record.Record{
		rec(f("name", "ok")),
		rec(f("name", "fine")),
		rec(f("label", "broken")),
	})

	var mk *MissingKeyFieldError
	if !errors.As(err, &mk) {
		t.Fatalf("expected MissingKeyFieldError, got %v", err)
	}
	if mk.Index != 2 {
		t.Errorf("expected index 2, got %d", mk.Index)
	}
}

func TestProcessCustomNormalizer(t *testing.T) {
	p := New("name", nil, textnorm.Fold)
	out, err := p.Process(rec(f("name", "Café Noir")))
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}
	if out.KeyValue != "cafe noir" {
		t.Errorf("expected folded key, got %q", out.KeyValue)
	}
}
