package operators

import (
	"go/token"
	"reflect"
	"strings"
	"testing"
)

func TestNumberAlternatives(t *testing.T) {
	tests := []struct {
		kind    token.Token
		literal string
		want    []string
	}{
		{token.INT, "5", []string{"6", "4", "-5", "0"}},
		{token.INT, "0", []string{"1", "-1"}},
		{token.INT, "0x10", []string{"17", "15", "-16", "0"}},
		{token.FLOAT, "1.5", []string{"2.5", "0.5", "-1.5", "0.0"}},
		{token.FLOAT, "0.0", []string{"1.0", "-1.0"}},
		{token.INT, "not-a-number", nil},
	}

	for _, tt := range tests {
		got := numberAlternatives(tt.kind, tt.literal)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("numberAlternatives(%s, %q) = %v, want %v", tt.kind, tt.literal, got, tt.want)
		}
	}
}

func TestFormatFloatKeepsLiteralKind(t *testing.T) {
	// A rendered alternative must still parse as a FLOAT token.
	if got := formatFloat(3); got != "3.0" {
		t.Errorf("formatFloat(3) = %q, want 3.0", got)
	}

	if got := formatFloat(2.5); got != "2.5" {
		t.Errorf("formatFloat(2.5) = %q", got)
	}

	if got := formatFloat(1e21); !strings.ContainsAny(got, ".eE") {
		t.Errorf("formatFloat(1e21) = %q lost its float marker", got)
	}
}

func TestNumberMutationOnSource(t *testing.T) {
	src := `package p

func area(w int) int {
	return w * 10
}
`

	candidates := collect(t, NumberMutation{}, src)
	if len(candidates) != 4 {
		t.Fatalf("got %d candidates, want 4: %v", len(candidates), replacements(candidates))
	}

	if got := replacements(candidates); got[0] != "11" || got[1] != "9" || got[2] != "-10" || got[3] != "0" {
		t.Fatalf("unexpected alternatives: %v", got)
	}
}

func TestBooleanMutation(t *testing.T) {
	src := `package p

var enabled = true

func off() bool {
	return false
}
`

	candidates := collect(t, BooleanMutation{}, src)
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	if candidates[0].Replacement != "false" || candidates[1].Replacement != "true" {
		t.Fatalf("unexpected flips: %v", replacements(candidates))
	}
}

func TestStringMutation(t *testing.T) {
	src := `package p

var greeting = "hello"
`

	candidates := collect(t, StringMutation{}, src)
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	if candidates[0].Replacement != `""` || candidates[1].Replacement != stringSentinel {
		t.Fatalf("unexpected replacements: %v", replacements(candidates))
	}
}

func TestStringMutationEmptyLiteralGetsSentinelOnly(t *testing.T) {
	src := `package p

var blank = ""
`

	candidates := collect(t, StringMutation{}, src)
	if len(candidates) != 1 || candidates[0].Replacement != stringSentinel {
		t.Fatalf("empty literal should only get the sentinel, got %v", replacements(candidates))
	}
}

func TestStringMutationSkipsRawAndLongLiterals(t *testing.T) {
	src := "package p\n\nvar pattern = `^[a-z]+$`\n\nvar long = \"" + strings.Repeat("x", 40) + "\"\n"

	if candidates := collect(t, StringMutation{}, src); len(candidates) != 0 {
		t.Fatalf("raw/long literals should be skipped, got %v", replacements(candidates))
	}
}
