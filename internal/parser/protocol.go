package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hexclash/tankagent/internal/hex"
)

// ErrMalformedStart is returned when the START line cannot be read.
var ErrMalformedStart = errors.New("malformed START line")

// Tokens splits a server line on runs of whitespace and slashes.
func Tokens(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		switch r {
		case ' ', '\t', '\r', '\n', '/':
			return true
		}
		return false
	})
}

// Tag is the classification of a server line.
type Tag int

const (
	TagOther Tag = iota
	TagMove
	TagDead
	TagDamage
	TagOK
	TagHuh
	TagFinish
	TagStart
)

var tags = map[string]Tag{
	"MOVE":   TagMove,
	"DEAD":   TagDead,
	"DAMAGE": TagDamage,
	"OK":     TagOK,
	"HUH?":   TagHuh,
	"FINISH": TagFinish,
	"START":  TagStart,
}

func (t Tag) String() string {
	for name, tag := range tags {
		if tag == t {
			return name
		}
	}
	return "OTHER"
}

// Classify returns the tag of the first token. Unknown tags, empty lines and scan payloads are
// TagOther.
func Classify(tokens []string) Tag {
	if len(tokens) == 0 {
		return TagOther
	}
	if t, ok := tags[tokens[0]]; ok {
		return t
	}
	return TagOther
}

// LastInt returns the last token that parses as an integer.
func LastInt(tokens []string) (int, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if n, err := strconv.Atoi(tokens[i]); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Start is the content of the START line.
type Start struct {
	SideLen           int
	Colour            string
	ExplorationRounds int
}

// ParseStart reads `START <side_len> <colour> <exploration_rounds>`.
func ParseStart(line string) (Start, error) {
	tokens := Tokens(line)
	if len(tokens) < 4 || tokens[0] != "START" {
		return Start{}, fmt.Errorf("%w: %q", ErrMalformedStart, line)
	}
	side, err := strconv.Atoi(tokens[1])
	if err != nil || side < 1 {
		return Start{}, fmt.Errorf("%w: side length %q", ErrMalformedStart, tokens[1])
	}
	if len(tokens[2]) != 1 || !hex.IsTeamColor(tokens[2][0]) {
		return Start{}, fmt.Errorf("%w: colour %q", ErrMalformedStart, tokens[2])
	}
	rounds, err := strconv.Atoi(tokens[3])
	if err != nil {
		return Start{}, fmt.Errorf("%w: exploration rounds %q", ErrMalformedStart, tokens[3])
	}
	return Start{SideLen: side, Colour: tokens[2], ExplorationRounds: rounds}, nil
}

// Payload joins the tokens of a scan reply back into one string.
func Payload(tokens []string) string {
	return strings.Join(tokens, "")
}
