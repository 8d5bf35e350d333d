package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"START R 0", []string{"START", "R", "0"}},
		{"START       R 0", []string{"START", "R", "0"}},
		{"abc defgh/ijk", []string{"abc", "defgh", "ijk"}},
		{"SHOOT N-NE", []string{"SHOOT", "N-NE"}},
		{"   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Tokens(tt.line)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Tag
	}{
		{"MOVE R 4", TagMove},
		{"DEAD", TagDead},
		{"DAMAGE 1", TagDamage},
		{"OK 2", TagOK},
		{"HUH?", TagHuh},
		{"FINISH", TagFinish},
		{"START 5 R 3", TagStart},
		{"ACTION!", TagOther},
		{"TIMEOUT!", TagOther},
		{"abc defgh ijk", TagOther},
		{"", TagOther},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(Tokens(tt.line)))
		})
	}
	assert.Equal(t, "HUH?", TagHuh.String())
	assert.Equal(t, "OTHER", TagOther.String())
}

func TestLastInt(t *testing.T) {
	n, ok := LastInt(Tokens("MOVE R 12"))
	require.True(t, ok)
	assert.Equal(t, 12, n)

	n, ok = LastInt(Tokens("OK 3 done"))
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = LastInt(Tokens("OK"))
	assert.False(t, ok)
}

func TestParseStart(t *testing.T) {
	s, err := ParseStart("START 5 R 100")
	require.NoError(t, err)
	assert.Equal(t, Start{SideLen: 5, Colour: "R", ExplorationRounds: 100}, s)

	for _, bad := range []string{"START 5 R", "MOVE 5 R 3", "START x R 3", "START 5 W 3", "START 5 R x", "START 0 R 3"} {
		_, err := ParseStart(bad)
		assert.ErrorIs(t, err, ErrMalformedStart, bad)
	}
}

func TestPayload(t *testing.T) {
	assert.Equal(t, "abcdefghijk", Payload(Tokens("abc defgh ijk")))
}
