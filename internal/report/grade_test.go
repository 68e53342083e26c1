package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeBoundaries(t *testing.T) {
	testCases := []struct {
		score    int
		expected string
	}{
		{100, "A+"},
		{97, "A+"},
		{96, "A"},
		{93, "A"},
		{92, "A-"},
		{90, "A-"},
		{89, "B+"},
		{87, "B+"},
		{86, "B"},
		{83, "B"},
		{82, "B-"},
		{80, "B-"},
		{79, "C+"},
		{77, "C+"},
		{76, "C"},
		{73, "C"},
		{72, "C-"},
		{70, "C-"},
		{69, "D+"},
		{67, "D+"},
		{66, "D"},
		{63, "D"},
		{62, "D-"},
		{60, "D-"},
		{59, "F"},
		{1, "F"},
		{0, "F"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Grade(tc.score), "score %d", tc.score)
	}
}

func TestGradeIsMonotonic(t *testing.T) {
	rank := map[string]int{
		"A+": 12, "A": 11, "A-": 10,
		"B+": 9, "B": 8, "B-": 7,
		"C+": 6, "C": 5, "C-": 4,
		"D+": 3, "D": 2, "D-": 1,
		"F": 0,
	}

	previous := rank[Grade(100)]
	for score := 99; score >= 0; score-- {
		current, ok := rank[Grade(score)]
		assert.True(t, ok, "grade for score %d is defined", score)
		assert.LessOrEqual(t, current, previous, "grade rank must not increase as score decreases (score %d)", score)
		previous = current
	}
}
