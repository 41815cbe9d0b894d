package decoder

import (
	"strconv"
	"strings"

	"github.com/Supercolbat/binarypp/vm/frame"
)

// DecodeText decodes the textual binary-literal form: ASCII,
// whitespace-separated 8-bit binary literals, led by the "00000000" mode
// marker (consumed here, not passed to the byte decoder). Any token that is
// not exactly eight '0'/'1' characters is silently dropped.
func DecodeText(data []byte) ([]frame.Instruction, error) {
	tokens := strings.Fields(string(data))
	if len(tokens) > 0 && tokens[0] == textModeMarker {
		tokens = tokens[1:]
	}

	code := make([]byte, 0, len(tokens))
	for _, tok := range tokens {
		if !isBinaryLiteral(tok) {
			continue
		}
		v, err := strconv.ParseUint(tok, 2, 8)
		if err != nil {
			continue
		}
		code = append(code, byte(v))
	}
	return DecodeBytes(code)
}

// isBinaryLiteral reports whether tok is exactly eight '0'/'1' characters.
func isBinaryLiteral(tok string) bool {
	if len(tok) != 8 {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] != '0' && tok[i] != '1' {
			return false
		}
	}
	return true
}
