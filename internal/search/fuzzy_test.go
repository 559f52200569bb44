package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "amelie", Fold("Amélie"))
	assert.Equal(t, "mr robot", Fold("  Mr. Robot! "))
	assert.Equal(t, "spider man no way home", Fold("Spider-Man: No Way Home"))
	assert.NotEmpty(t, Fold("기생충"))
}

func indexes(matches []Match) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

func TestRank(t *testing.T) {
	titles := []string{
		"Mr. Robot",             // 0
		"Robots",                // 1
		"Amélie",                // 2
		"The Lord of the Rings", // 3
		"Heat",                  // 4
	}

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"word order does not matter", "robot mr", []int{0}},
		{"prefix", "robo", []int{1, 0}},
		{"accents folded", "amelie", []int{2}},
		{"typo tolerated", "amlie", []int{2}},
		{"no match", "zed", nil},
		{"scattered characters", "lotr", []int{3}},
		{"empty query", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := indexes(Rank(tt.query, titles))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllowedTypos(t *testing.T) {
	assert.Equal(t, 0, allowedTypos(3))
	assert.Equal(t, 1, allowedTypos(6))
	assert.Equal(t, 2, allowedTypos(9))
}
