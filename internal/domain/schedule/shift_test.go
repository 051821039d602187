package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		cell string
		want float64
	}{
		{"1", 1},
		{"3", 1},
		{"0", 0},
		{"", 0},
		{"  ", 0},
		{"0.5", 0.5},
		{"0,5", 0.5},
		{"1.5", 1.5},
		{"2", 2},
		{"2.5", 0},
		{"15", 0},
		{"-1", 0},
		{"VR", 0},
		{"Б", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"shift", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.cell), "cell %q", tc.cell)
	}
}

func TestClassifyIsTotalAndBounded(t *testing.T) {
	inputs := []string{"", "1", "3", "0", "0,25", "1.75", "2.0", "9", "1e3", "0x1p0", "VR", "б", "\"1\"", "12.03", "½"}
	for _, in := range inputs {
		got := Classify(in)
		assert.GreaterOrEqual(t, got, 0.0, in)
		assert.LessOrEqual(t, got, MaxUnits, in)
		assert.Equal(t, got, Classify(in), "classify must be deterministic for %q", in)
	}
}

func TestParseMarkKinds(t *testing.T) {
	assert.Equal(t, Mark{Kind: KindShift, Units: 1}, ParseMark("3"))
	assert.Equal(t, Mark{Kind: KindOff}, ParseMark("0"))
	assert.Equal(t, Mark{Kind: KindOff}, ParseMark("0.0"))
	assert.Equal(t, Mark{Kind: KindVacation}, ParseMark("vr"))
	assert.Equal(t, Mark{Kind: KindSick}, ParseMark("Б"))
	assert.Equal(t, Mark{Kind: KindEmpty}, ParseMark(""))
	assert.Equal(t, Mark{Kind: KindOther}, ParseMark("5"))
	assert.Equal(t, Mark{Kind: KindShift, Units: 1}, ParseMark(`"1"`))
}
