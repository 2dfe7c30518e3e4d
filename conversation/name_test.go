package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPatternName(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"my name is musa kamara", "Musa Kamara", true},
		{"Hello, my name is aminata", "Aminata", true},
		{"i am Fatmata Sesay", "Fatmata Sesay", true},
		{"I'm abu", "Abu", true},
		{"call me ibrahim", "Ibrahim", true},
		{"hi this is mariama.", "Mariama", true},
		{"kushe, i am sorie", "Sorie", true},
		{"good evening", "", false},
		{"1", "", false},
		{"my name is ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := extractPatternName(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractNameFallsBackToWholeMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"musa kamara", "Musa Kamara"},
		{"hello musa", "Musa"},
		{"MARIAMA", "Mariama"},
		{"  salifu  conteh  ", "Salifu Conteh"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, extractName(tt.in))
		})
	}
}
