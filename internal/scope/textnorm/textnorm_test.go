package textnorm

import "testing"

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "apple pie", "apple pie"},
		{"quotes", `"bob's" diner`, "bobs diner"},
		{"punctuation", "a, b. (c) d-e", "a b c de"},
		{"ampersand", "fish & chips", "fish and chips"},
		{"only punctuation", "().-", ""},
		{"question mark kept", "why?", "why?"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simplify(tt.in); got != tt.expected {
				t.Errorf("Simplify(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"café", "cafe"},
		{"Crème Brûlée", "creme brulee"},
		{"Straße & co.", "strasse and co"},
		{"naïve", "naive"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.expected {
				t.Errorf("Fold(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		probe   string
		result  string
	}{
		{"default", "", false, "a-b", "ab"},
		{"simplify", "simplify", false, "a-b", "ab"},
		{"fold", "Fold", false, "é-b", "eb"},
		{"none", "none", false, "a-b", "a-b"},
		{"unknown", "soundex", true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ByName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ByName(%q) failed: %v", tt.input, err)
			}
			if got := n(tt.probe); got != tt.result {
				t.Errorf("expected %q, got %q", tt.result, got)
			}
		})
	}
}
