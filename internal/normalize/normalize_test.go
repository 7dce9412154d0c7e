package normalize

import "testing"

func TestStringLowercasesAndStripsPunctuation(t *testing.T) {
	got := String("Armagh City, Banbridge and Craigavon")
	want := "armagh city banbridge and craigavon"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringFoldsDiacritics(t *testing.T) {
	got := String("Zürich")
	if got != "zurich" {
		t.Fatalf("String(Zürich) = %q, want zurich", got)
	}
}

func TestStringIsIdempotent(t *testing.T) {
	cases := []string{
		"Lyuliakovo",
		"WhereareallthedentistsinAbercornIwouldlisomesomewhere",
		"Zürich, São Paulo!!",
		"",
	}
	for _, c := range cases {
		once := String(c)
		twice := String(once)
		if once != twice {
			t.Fatalf("String not idempotent for %q: once=%q twice=%q", c, once, twice)
		}
	}
}

func TestStringCollapsesWhitespace(t *testing.T) {
	got := String("  One1   Two  ")
	if got != "one1 two" {
		t.Fatalf("String() = %q, want %q", got, "one1 two")
	}
}

func TestWordsSplitsOnWhitespace(t *testing.T) {
	words := Words(String("Armagh City, Banbridge and Craigavon"))
	want := []string{"armagh", "city", "banbridge", "and", "craigavon"}
	if len(words) != len(want) {
		t.Fatalf("Words() = %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("Words()[%d] = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestWordsEmpty(t *testing.T) {
	if got := Words(""); got != nil {
		t.Fatalf("Words(\"\") = %v, want nil", got)
	}
}
