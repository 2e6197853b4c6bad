package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgtools/buylistdb/internal/domain"
)

func TestParse_Grammars(t *testing.T) {
	tests := []struct {
		name string
		line string
		want domain.CardRequest
	}{
		{
			name: "bare name",
			line: "Lightning Bolt",
			want: domain.CardRequest{Name: "Lightning Bolt", RawInput: "Lightning Bolt"},
		},
		{
			name: "bare name with quantity",
			line: "3 Counterspell",
			want: domain.CardRequest{Name: "Counterspell", RawInput: "3 Counterspell"},
		},
		{
			name: "pipe grammar",
			line: "Lightning Bolt | LEA",
			want: domain.CardRequest{Name: "Lightning Bolt", SetCode: "LEA", RawInput: "Lightning Bolt | LEA"},
		},
		{
			name: "pipe grammar with quantity and lowercase set",
			line: "2x Sol Ring | lea",
			want: domain.CardRequest{Name: "Sol Ring", SetCode: "LEA", RawInput: "2x Sol Ring | lea"},
		},
		{
			name: "collection grammar with quantity and collector number",
			line: "2x Sol Ring (lea) 1",
			want: domain.CardRequest{Name: "Sol Ring", SetCode: "LEA", RawInput: "2x Sol Ring (lea) 1"},
		},
		{
			name: "collection grammar without quantity",
			line: "Sol Ring (LEA)",
			want: domain.CardRequest{Name: "Sol Ring", SetCode: "LEA", RawInput: "Sol Ring (LEA)"},
		},
		{
			name: "collection grammar with foil marker",
			line: "1 The Rise of Sozin (TLA) 117 *F*",
			want: domain.CardRequest{Name: "The Rise of Sozin", SetCode: "TLA", IsFoil: true, RawInput: "1 The Rise of Sozin (TLA) 117 *F*"},
		},
		{
			name: "pipe grammar with foil marker",
			line: "Sol Ring | C21 *F*",
			want: domain.CardRequest{Name: "Sol Ring", SetCode: "C21", IsFoil: true, RawInput: "Sol Ring | C21 *F*"},
		},
		{
			name: "bare quantity without x",
			line: "4 Brainstorm",
			want: domain.CardRequest{Name: "Brainstorm", RawInput: "4 Brainstorm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := Parse(tt.line)
			require.Len(t, requests, 1)
			assert.Equal(t, tt.want, requests[0])
		})
	}
}

func TestParse_RequestPerNonBlankLine(t *testing.T) {
	text := "Lightning Bolt\n\n  \n2x Sol Ring (lea) 1\n???not a card???\nCounterspell | ICE\n"

	requests := Parse(text)

	// Every non-blank line yields a request, malformed ones included.
	require.Len(t, requests, 4)
	assert.Equal(t, "???not a card???", requests[2].Name)
	assert.Equal(t, "???not a card???", requests[2].RawInput)
	assert.Empty(t, requests[2].SetCode)
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n \n\t\n"))
}

func TestAllHaveSetCodes(t *testing.T) {
	withSet := domain.CardRequest{Name: "Sol Ring", SetCode: "LEA"}
	withoutSet := domain.CardRequest{Name: "Sol Ring"}

	assert.False(t, AllHaveSetCodes(nil))
	assert.False(t, AllHaveSetCodes([]domain.CardRequest{}))
	assert.False(t, AllHaveSetCodes([]domain.CardRequest{withSet, withoutSet}))
	assert.True(t, AllHaveSetCodes([]domain.CardRequest{withSet, withSet}))
}
