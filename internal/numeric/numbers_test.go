package numeric

import (
	"math"
	"reflect"
	"testing"
)

func TestExtractNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "currency with magnitude",
			text: "Revenue reached $96.8 billion in the quarter.",
			want: []string{"$96.8 billion"},
		},
		{
			name: "percentage",
			text: "Growth was 18.5% year over year.",
			want: []string{"18.5%"},
		},
		{
			name: "thousands separated",
			text: "The company employs 164,000 people.",
			want: []string{"164,000"},
		},
		{
			name: "year",
			text: "Founded in 1998 in a garage.",
			want: []string{"1998"},
		},
		{
			name: "bare magnitude",
			text: "About 2.5 billion devices are active.",
			want: []string{"2.5 billion"},
		},
		{
			name: "mixed",
			text: "In 2021 revenue was $4.2 million, up 12%.",
			want: []string{"2021", "$4.2 million", "12%"},
		},
		{
			name: "decimal",
			text: "The ratio improved to 3.75 from 3.5.",
			want: []string{"3.75", "3.5"},
		},
		{
			name: "deduplicated",
			text: "It grew 12% then another 12%.",
			want: []string{"12%"},
		},
		{
			name: "no numbers",
			text: "No quantities appear anywhere here.",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \t\n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractNumbers(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractNumbers(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractNumbersNoOverlap(t *testing.T) {
	// The currency pattern must claim its span before the decimal pattern
	// re-reports the digits.
	got := ExtractNumbers("Revenue of $96.8 billion beat estimates.")
	for _, n := range got {
		if n == "96.8" {
			t.Errorf("bare decimal leaked from inside currency match: %v", got)
		}
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"$96.8 billion", 96.8e9, true},
		{"€1.2 million", 1.2e6, true},
		{"£500", 500, true},
		{"18.5%", 18.5, true},
		{"12%", 12, true},
		{"164,000", 164000, true},
		{"2.5 billion", 2.5e9, true},
		{"3 thousand", 3000, true},
		{"1998", 1998, true},
		{"4.2m", 4.2e6, true},
		{"7b", 7e9, true},
		{"1.5t", 1.5e12, true},
		{"10k", 10000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"$", 0, false},
		{"abc", 0, false},
		{"%", 0, false},
	}

	for _, tt := range tests {
		got, ok := NormalizeNumber(tt.raw)
		if ok != tt.valid {
			t.Errorf("NormalizeNumber(%q) valid = %v, want %v", tt.raw, ok, tt.valid)
			continue
		}
		if tt.valid && math.Abs(got-tt.want) > 1e-9*math.Max(1, math.Abs(tt.want)) {
			t.Errorf("NormalizeNumber(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestIsYear(t *testing.T) {
	years := []string{"1998", "2021", "2099", "1000"}
	for _, y := range years {
		if !IsYear(y) {
			t.Errorf("IsYear(%q) = false, want true", y)
		}
	}

	notYears := []string{"2100", "999", "164,000", "18.5%", "$96.8 billion", ""}
	for _, n := range notYears {
		if IsYear(n) {
			t.Errorf("IsYear(%q) = true, want false", n)
		}
	}
}
