package report

// gradeBands maps minimum scores to letter grades, highest first.
var gradeBands = []struct {
	min   int
	grade string
}{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// Grade converts a numeric score to its letter grade.
func Grade(score int) string {
	for _, band := range gradeBands {
		if score >= band.min {
			return band.grade
		}
	}
	return "F"
}
