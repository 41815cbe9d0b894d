package decoder

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

// TestGrammar verifies that the textual binary-literal format documented
// in grammar.ebnf is well-formed and that every production is reachable
// from Program.
func TestGrammar(t *testing.T) {
	f, err := os.Open("grammar.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("grammar.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatal(err)
	}
}
