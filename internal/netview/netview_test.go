package netview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

func solved() Stickers {
	var s Stickers
	for i, face := range types.Faces {
		for j := range s[i] {
			s[i][j] = face
		}
	}
	return s
}

func TestLetters_Solved(t *testing.T) {
	out := Letters(solved())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 9)

	assert.Equal(t, "UUU", strings.TrimSpace(lines[0]))
	assert.Equal(t, "LLL FFF RRR BBB", strings.TrimRight(lines[4], " "))
	assert.Equal(t, "DDD", strings.TrimSpace(lines[8]))
	assert.True(t, strings.HasPrefix(lines[0], "    UUU"))
}

func TestLetters_UnknownSticker(t *testing.T) {
	s := solved()
	s[0][4] = ""
	lines := strings.Split(Letters(s), "\n")
	assert.Equal(t, "U?U", strings.TrimSpace(lines[1]))
}

func TestRender_HasNineRows(t *testing.T) {
	out := Render(solved())
	assert.Len(t, strings.Split(out, "\n"), 9)
}
