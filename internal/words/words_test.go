package words

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestNewNormalizes(t *testing.T) {
	d := New([]string{"  Eat\r", "ATE", "tea", "tea", "", "# comment", "don't", "café", "a"})

	for _, w := range []string{"eat", "ate", "tea", "a"} {
		if !d.Contains(w) {
			t.Fatalf("expected %q in dictionary", w)
		}
	}
	for _, w := range []string{"Eat", "don't", "café", "# comment", ""} {
		if d.Contains(w) {
			t.Fatalf("did not expect %q in dictionary", w)
		}
	}
	if d.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", d.Len())
	}
}

func TestAnagramBuckets(t *testing.T) {
	d := New([]string{"tea", "eat", "ate", "tan", "eta"})

	got := d.Anagrams(Key("tea"))
	want := []string{"ate", "eat", "eta", "tea"}
	if !slices.Equal(got, want) {
		t.Fatalf("Anagrams(aet) = %v, want %v", got, want)
	}
	if got := d.Anagrams("xyz"); len(got) != 0 {
		t.Fatalf("Anagrams(xyz) = %v, want empty", got)
	}
}

func TestKey(t *testing.T) {
	tests := map[string]string{
		"tea":      "aet",
		"listen":   "eilnst",
		"a":        "a",
		"":         "",
		"triangle": "aegilnrt",
	}
	for in, want := range tests {
		if got := Key(in); got != want {
			t.Fatalf("Key(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOfLengthAndStats(t *testing.T) {
	d := New([]string{"planet", "plate", "ant", "tan", "nap", "platen"})

	if got := d.OfLength(6); !slices.Equal(got, []string{"planet", "platen"}) {
		t.Fatalf("OfLength(6) = %v", got)
	}
	stats := d.Stats()
	if stats[3] != 3 || stats[5] != 1 || stats[6] != 2 {
		t.Fatalf("Stats() = %v", stats)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("Eat\nate\n\nTEA\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Len() != 3 || !d.Contains("tea") {
		t.Fatalf("unexpected dictionary: len=%d", d.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmbedded(t *testing.T) {
	d, err := Load("")
	if err != nil {
		t.Fatalf("Load embedded: %v", err)
	}
	if len(d.OfLength(6)) == 0 {
		t.Fatal("embedded dictionary has no 6-letter seeds")
	}
	if !d.Contains("planet") {
		t.Fatal("embedded dictionary missing planet")
	}
}

func TestSeedPickers(t *testing.T) {
	d := New([]string{"garden", "planet", "stream", "eat"})

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		w := d.RandomWord(6, r)
		if len(w) != 6 || !d.Contains(w) {
			t.Fatalf("RandomWord(6) = %q", w)
		}
	}
	if w := d.RandomWord(9, r); w != "" {
		t.Fatalf("RandomWord(9) = %q, want empty", w)
	}

	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	a := d.DailyWord(6, day, "salt")
	if a == "" || a != d.DailyWord(6, day.Add(time.Hour), "salt") {
		t.Fatalf("DailyWord not stable within a day: %q", a)
	}
	if w := d.DailyWord(9, day, "salt"); w != "" {
		t.Fatalf("DailyWord(9) = %q, want empty", w)
	}
}
