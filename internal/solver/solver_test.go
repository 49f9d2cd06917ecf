package solver

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/robalobadob/texttwist/apps/go-server/internal/words"
)

func mustLetters(t *testing.T, w string) Letters {
	t.Helper()
	l, err := ParseLetters(w)
	if err != nil {
		t.Fatalf("ParseLetters(%q): %v", w, err)
	}
	return l
}

func TestSolveScenario(t *testing.T) {
	dict := words.New([]string{"eat", "ate", "tea", "tan"})

	got, err := Solve(mustLetters(t, "eat"), dict, "eat")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	want := []string{"ate", "eat", "tea"}
	if !slices.Equal(got, want) {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
}

func TestSolveOrdersByLengthThenWord(t *testing.T) {
	dict := words.New([]string{"planet", "plan", "ant", "plane", "tan", "nap", "lane", "platen", "pa"})

	got, err := Solve(mustLetters(t, "planet"), dict, "planet")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	want := []string{"ant", "nap", "tan", "lane", "plan", "plane", "planet", "platen"}
	if !slices.Equal(got, want) {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
}

func TestSolveIncludesSeedOutsideDictionary(t *testing.T) {
	got, err := Solve(mustLetters(t, "tae"), words.New(nil), "tae")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !slices.Equal(got, []string{"tae"}) {
		t.Fatalf("Solve() with empty dictionary = %v, want [tae]", got)
	}
}

func TestSolveRepeatedLetters(t *testing.T) {
	// "eel" needs two e's; "lee" too. "ell" needs two l's and must be excluded.
	dict := words.New([]string{"eel", "lee", "ell", "keel", "leek", "eke", "kee"})

	got, err := Solve(mustLetters(t, "keel"), dict, "keel")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	want := []string{"eel", "eke", "kee", "lee", "keel", "leek"}
	if !slices.Equal(got, want) {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
}

func TestSolveInvalidSeed(t *testing.T) {
	dict := words.New([]string{"eat"})
	tests := []struct {
		name    string
		letters string
		seed    string
	}{
		{name: "too short", letters: "at", seed: "at"},
		{name: "empty", letters: "", seed: ""},
		{name: "letters mismatch", letters: "eat", seed: "tan"},
		{name: "extra letter", letters: "eat", seed: "eats"},
		{name: "uppercase seed", letters: "eat", seed: "EAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLetters(t, tt.letters)
			if _, err := Solve(l, dict, tt.seed); !errors.Is(err, ErrInvalidSeed) {
				t.Fatalf("Solve() err = %v, want ErrInvalidSeed", err)
			}
			if _, err := BruteForce(l, dict, tt.seed); !errors.Is(err, ErrInvalidSeed) {
				t.Fatalf("BruteForce() err = %v, want ErrInvalidSeed", err)
			}
		})
	}
}

func TestSolveClosureAndDeterminism(t *testing.T) {
	dict, err := words.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, seed := range []string{"planet", "stream", "garden", "triangle", "listen"} {
		l := mustLetters(t, seed)
		first, err := Solve(l, dict, seed)
		if err != nil {
			t.Fatalf("Solve(%s): %v", seed, err)
		}
		second, _ := Solve(l, dict, seed)
		if !slices.Equal(first, second) {
			t.Fatalf("Solve(%s) not deterministic: %v vs %v", seed, first, second)
		}
		if !slices.Contains(first, seed) {
			t.Fatalf("Solve(%s) missing seed", seed)
		}
		for _, w := range first {
			if !dict.Contains(w) {
				t.Fatalf("Solve(%s) returned %q not in dictionary", seed, w)
			}
			if len(w) < MinWordLength || len(w) > l.Len() {
				t.Fatalf("Solve(%s) returned %q with bad length", seed, w)
			}
			if !l.Contains(w) {
				t.Fatalf("Solve(%s) returned %q not spellable", seed, w)
			}
		}
	}
}

func TestSolveMatchesBruteForce(t *testing.T) {
	// A small alphabet keeps random words likely to collide with the letters.
	const pool = "aabeelrst"
	r := rand.New(rand.NewPCG(7, 11))

	randomWord := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = pool[r.IntN(len(pool))]
		}
		return string(b)
	}

	for trial := 0; trial < 200; trial++ {
		list := make([]string, 0, 150)
		for i := 0; i < 150; i++ {
			list = append(list, randomWord(1+r.IntN(7)))
		}
		dict := words.New(list)

		seed := randomWord(MinWordLength + r.IntN(5))
		l := mustLetters(t, seed)

		fast, err := Solve(l, dict, seed)
		if err != nil {
			t.Fatalf("Solve(%s): %v", seed, err)
		}
		slow, err := BruteForce(l, dict, seed)
		if err != nil {
			t.Fatalf("BruteForce(%s): %v", seed, err)
		}
		if !slices.Equal(fast, slow) {
			t.Fatalf("trial %d seed %q:\n bucket = %v\n brute  = %v", trial, seed, fast, slow)
		}
	}
}

func TestSolveContextCancelled(t *testing.T) {
	dict, err := words.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := SolveContext(ctx, mustLetters(t, "triangle"), dict, "triangle")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("SolveContext() err = %v, want context.Canceled", err)
	}
	if got != nil {
		t.Fatalf("SolveContext() returned partial result %v", got)
	}
}

func TestLetters(t *testing.T) {
	l := mustLetters(t, "banana")
	if l.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", l.Len())
	}
	if l.Key() != words.Key("banana") {
		t.Fatalf("Key() = %q, want %q", l.Key(), words.Key("banana"))
	}
	if l != mustLetters(t, "nabana") {
		t.Fatal("anagrams should produce equal Letters")
	}
	if l == mustLetters(t, "banan") {
		t.Fatal("different multisets compared equal")
	}

	tests := map[string]bool{
		"ban":     true,
		"nana":    true,
		"banana":  true,
		"bananas": false,
		"bb":      false,
		"Ban":     false,
		"":        true,
	}
	for w, want := range tests {
		if got := l.Contains(w); got != want {
			t.Fatalf("Contains(%q) = %v, want %v", w, got, want)
		}
	}

	if _, err := ParseLetters("ab1"); !errors.Is(err, ErrInvalidSeed) {
		t.Fatalf("ParseLetters(ab1) err = %v, want ErrInvalidSeed", err)
	}
}
