package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeFormat(t *testing.T) {
	s := NewScorer(nil)

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "bullet glyph", text: "• item", want: 25},
		{name: "dash marker", text: "- item", want: 25},
		{name: "numbered marker", text: "1. item", want: 25},
		{name: "bare year", text: "since 2021", want: 25},
		{name: "month slash year", text: "3/2020", want: 25},
		{name: "email", text: "jane@example.com", want: 20},
		{name: "phone dashed", text: "555-123-4567", want: 45},
		{name: "phone plain", text: "5551234567", want: 20},
		{name: "length bonus lower bound", text: strings.Repeat("word ", 200), want: 10},
		{name: "length bonus upper bound", text: strings.Repeat("word ", 800), want: 10},
		{name: "too short", text: strings.Repeat("word ", 199), want: 0},
		{name: "too long", text: strings.Repeat("word ", 801), want: 0},
		{name: "everything", text: "• Jan 2020 me@x.com 555.123.4567 " + strings.Repeat("word ", 200), want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.AnalyzeFormat(tt.text))
		})
	}
}
