package qtype_test

import (
	"testing"

	"github.com/quizforge/quizforge/internal/qtype"
)

func TestBooleanCorrect(t *testing.T) {
	cases := []struct {
		name          string
		user, correct any
		want          int
	}{
		{"equal", "a", "a", 0},
		{"different", "a", "b", 1},
		{"case sensitive", "A", "a", 1},
		{"user not a string", 1, "a", qtype.Incomparable},
		{"correct not a string", "a", []string{"a"}, qtype.Incomparable},
		{"nil user", nil, "a", qtype.Incomparable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := qtype.CountMistakes(qtype.MetricBooleanCorrect, tc.user, tc.correct)
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSetDistance(t *testing.T) {
	cases := []struct {
		name          string
		user, correct any
		want          int
	}{
		{"equal sets", []string{"1", "2"}, []string{"2", "1"}, 0},
		{"one swap", []string{"1", "2", "4"}, []string{"1", "2", "3"}, 1},
		{"missing two", []string{"1"}, []string{"1", "2", "3"}, 2},
		{"extra two", []string{"1", "2", "3"}, []string{"1"}, 2},
		{"max of missing and extra", []string{"4", "5"}, []string{"1", "2", "3"}, 3},
		{"duplicates collapse", []string{"1", "1", "2"}, []string{"1", "2"}, 0},
		{"json decoded slice", []any{"1", "2"}, []string{"1", "2"}, 0},
		{"non-string member", []any{"1", 2}, []string{"1", "2"}, qtype.Incomparable},
		{"not a slice", "1,2", []string{"1", "2"}, qtype.Incomparable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := qtype.CountMistakes(qtype.MetricSetDistance, tc.user, tc.correct)
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPairMismatchCount(t *testing.T) {
	correct := map[string]string{"a": "1", "b": "2", "c": "3"}
	cases := []struct {
		name string
		user any
		want int
	}{
		{"all match", map[string]string{"a": "1", "b": "2", "c": "3"}, 0},
		{"one wrong", map[string]string{"a": "1", "b": "3", "c": "3"}, 1},
		{"all wrong", map[string]string{"a": "2", "b": "3", "c": "1"}, 3},
		{"missing key counts", map[string]string{"a": "1", "b": "2"}, 1},
		{"extra keys ignored", map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"}, 0},
		{"json decoded map", map[string]any{"a": "1", "b": "2", "c": "3"}, 0},
		{"non-string value", map[string]any{"a": 1}, qtype.Incomparable},
		{"not a map", []string{"a"}, qtype.Incomparable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := qtype.CountMistakes(qtype.MetricPairMismatchCount, tc.user, correct)
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCompactTextEqual(t *testing.T) {
	cases := []struct {
		name          string
		user, correct any
		want          int
	}{
		{"exact", "mitosis", "mitosis", 0},
		{"trim and case", " МИТОЗ ", "митоз", 0},
		{"internal whitespace collapsed", "cell   division", "cell division", 0},
		{"different", "mitosis", "meiosis", 1},
		{"empty user incomparable", "   ", "mitosis", qtype.Incomparable},
		{"empty correct incomparable", "mitosis", "", qtype.Incomparable},
		{"non-string", 5, "mitosis", qtype.Incomparable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := qtype.CountMistakes(qtype.MetricCompactTextEqual, tc.user, tc.correct)
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestHammingDigits(t *testing.T) {
	cases := []struct {
		name          string
		user, correct any
		want          int
	}{
		{"equal", "1234", "1234", 0},
		{"one mismatch", "1234", "1235", 1},
		{"length diff plus prefix mismatch", "124", "1234", 2},
		{"length only", "12345", "123", 2},
		{"whitespace stripped", " 12 34 ", "1234", 0},
		{"non-digit incomparable", "12a4", "1234", qtype.Incomparable},
		{"empty incomparable", "  ", "1234", qtype.Incomparable},
		{"non-string incomparable", 1234, "1234", qtype.Incomparable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := qtype.CountMistakes(qtype.MetricHammingDigits, tc.user, tc.correct)
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestUnknownMetricIsIncomparable(t *testing.T) {
	if got := qtype.CountMistakes(qtype.Metric("bogus"), "a", "a"); got != qtype.Incomparable {
		t.Fatalf("got %d, want Incomparable", got)
	}
}
