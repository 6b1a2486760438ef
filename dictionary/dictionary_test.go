package dictionary

import (
	"testing"
	"unicode/utf8"
)

func TestLookupExact(t *testing.T) {
	d := New()
	d.AddExact("en", "it", "Shopping Cart", "Carrello")

	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{"exact match", "Shopping Cart", "Carrello", true},
		{"case insensitive", "shopping cart", "Carrello", true},
		{"trimmed", "  Shopping Cart  ", "Carrello", true},
		{"no match", "Shopping", "", false},
		{"substring is not exact", "My Shopping Cart", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.LookupExact(tt.content, "en", "it")
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookupExact_LanguagePairScoped(t *testing.T) {
	d := New()
	d.AddExact("en", "it", "Hello", "Ciao")
	d.AddExact("en", "es", "Hello", "Hola")

	if got, _ := d.LookupExact("Hello", "en", "it"); got != "Ciao" {
		t.Errorf("en>it: got %q", got)
	}
	if got, _ := d.LookupExact("Hello", "en", "es"); got != "Hola" {
		t.Errorf("en>es: got %q", got)
	}
	if _, ok := d.LookupExact("Hello", "en", "fr"); ok {
		t.Error("en>fr should have no rule")
	}
}

func TestApplyPartial(t *testing.T) {
	d := New()
	d.AddPartial(PartialRule{Search: "ACME Corp", Replace: "ACME S.p.A."})

	got := d.ApplyPartial("Welcome to acme corp headquarters")
	if got != "Welcome to ACME S.p.A. headquarters" {
		t.Errorf("got %q", got)
	}
}

func TestApplyPartial_CaseSensitive(t *testing.T) {
	d := New()
	d.AddPartial(PartialRule{Search: "Go", Replace: "Golang", CaseSensitive: true})

	got := d.ApplyPartial("Go is fun, let's go")
	if got != "Golang is fun, let's go" {
		t.Errorf("got %q", got)
	}
}

func TestApplyPartial_DeclaredOrder(t *testing.T) {
	d := New()
	d.AddPartial(PartialRule{Search: "cat", Replace: "dog"})
	d.AddPartial(PartialRule{Search: "dog", Replace: "bird"})

	// The first rule's output feeds the second.
	if got := d.ApplyPartial("cat"); got != "bird" {
		t.Errorf("got %q, want %q", got, "bird")
	}
}

func TestApplyPartial_LengthChangingRunes(t *testing.T) {
	// Case mapping is not byte-length preserving (U+0130 "İ" lowers to a
	// different byte count), so folding must never transfer indexes from
	// a lowercased copy back onto the original.
	d := New()
	d.AddPartial(PartialRule{Search: "go", Replace: "Go"})

	got := d.ApplyPartial("AAİgo")
	if got != "AAİGo" {
		t.Errorf("got %q, want %q", got, "AAİGo")
	}
	if !utf8.ValidString(got) {
		t.Errorf("Result is not valid UTF-8: %q", got)
	}

	got = d.ApplyPartial("İİ go İİ GO İİ")
	if got != "İİ Go İİ Go İİ" {
		t.Errorf("got %q", got)
	}
}

func TestApplyPartial_EmptySearchIgnored(t *testing.T) {
	d := New()
	d.AddPartial(PartialRule{Search: "", Replace: "x"})

	in := "unchanged"
	if got := d.ApplyPartial(in); got != in {
		t.Errorf("got %q", got)
	}
}

func TestApplyPartial_ReplacementDollarLiteral(t *testing.T) {
	d := New()
	d.AddPartial(PartialRule{Search: "price", Replace: "$1 price"})

	if got := d.ApplyPartial("best PRICE"); got != "best $1 price" {
		t.Errorf("Replacement must be literal, got %q", got)
	}
}

func TestApplyPartial_NoRulesNoOp(t *testing.T) {
	d := New()
	in := "unchanged content"
	if got := d.ApplyPartial(in); got != in {
		t.Errorf("got %q", got)
	}
}

func TestMatchWildcard(t *testing.T) {
	d := New()
	if err := d.AddWildcard("en", "it", "Welcome back, *!", "Bentornato, *!"); err != nil {
		t.Fatalf("AddWildcard failed: %v", err)
	}

	got, ok := d.MatchWildcard("Welcome back, Maria!", "en", "it")
	if !ok {
		t.Fatal("Expected wildcard match")
	}
	if got != "Bentornato, Maria!" {
		t.Errorf("got %q", got)
	}
}

func TestMatchWildcard_MultipleSlots(t *testing.T) {
	d := New()
	if err := d.AddWildcard("en", "it", "* of * items", "* di * elementi"); err != nil {
		t.Fatalf("AddWildcard failed: %v", err)
	}

	got, ok := d.MatchWildcard("3 of 10 items", "en", "it")
	if !ok {
		t.Fatal("Expected wildcard match")
	}
	if got != "3 di 10 elementi" {
		t.Errorf("got %q", got)
	}
}

func TestMatchWildcard_FirstDeclaredWins(t *testing.T) {
	d := New()
	d.AddWildcard("en", "it", "Hello *", "Ciao *")
	d.AddWildcard("en", "it", "Hello World", "WRONG")

	got, ok := d.MatchWildcard("Hello World", "en", "it")
	if !ok || got != "Ciao World" {
		t.Errorf("First declared pattern should win, got %q (ok=%v)", got, ok)
	}
}

func TestMatchWildcard_FullMatchOnly(t *testing.T) {
	d := New()
	d.AddWildcard("en", "it", "Page *", "Pagina *")

	if _, ok := d.MatchWildcard("See Page 3 for details", "en", "it"); ok {
		t.Error("Pattern should only match the whole content")
	}
	if _, ok := d.MatchWildcard("  Page 3  ", "en", "it"); !ok {
		t.Error("Surrounding whitespace should be ignored")
	}
}

func TestMatchWildcard_CaseInsensitive(t *testing.T) {
	d := New()
	d.AddWildcard("en", "it", "page *", "Pagina *")

	if _, ok := d.MatchWildcard("PAGE 3", "en", "it"); !ok {
		t.Error("Wildcard match should be case-insensitive")
	}
}

func TestMatchWildcard_SpecialCharsLiteral(t *testing.T) {
	d := New()
	if err := d.AddWildcard("en", "it", "Total: $* (incl. tax)", "Totale: $* (tasse incl.)"); err != nil {
		t.Fatalf("AddWildcard failed: %v", err)
	}

	got, ok := d.MatchWildcard("Total: $42.50 (incl. tax)", "en", "it")
	if !ok {
		t.Fatal("Regex metacharacters in the pattern should match literally")
	}
	if got != "Totale: $42.50 (tasse incl.)" {
		t.Errorf("got %q", got)
	}
}

func TestMatchWildcard_ExtraReplacementSlots(t *testing.T) {
	d := New()
	d.AddWildcard("en", "it", "Hi *", "Ciao * e *")

	got, ok := d.MatchWildcard("Hi Maria", "en", "it")
	if !ok {
		t.Fatal("Expected match")
	}
	if got != "Ciao Maria e " {
		t.Errorf("Extra slots should become empty, got %q", got)
	}
}
