package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "neo", "neo"},
		{"uppercase", "NEO", "neo"},
		{"surrounding whitespace", "  Neo  ", "neo"},
		{"mixed case and tabs", "\tDevGuy42 ", "devguy42"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHandle(tt.in))
		})
	}
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple list", "Go,Postgres,Redis", []string{"Go", "Postgres", "Redis"}},
		{"spaces around pieces", " Go , Postgres ,Redis ", []string{"Go", "Postgres", "Redis"}},
		{"empty pieces dropped", "Go,,Postgres,", []string{"Go", "Postgres"}},
		{"single skill", "Go", []string{"Go"}},
		{"only commas", ",,,", []string{}},
		{"empty input", "", []string{}},
		{"order preserved", "C,B,A", []string{"C", "B", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSkills(tt.in))
		})
	}
}
