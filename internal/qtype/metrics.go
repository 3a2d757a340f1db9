package qtype

import (
	"math"
	"strings"
	"unicode"
)

// Incomparable is the mistake count returned when an answer pair cannot be
// normalized to the metric's expected shape. It is large enough that no
// formula ever awards partial credit for it.
const Incomparable = math.MaxInt32

// CountMistakes applies metric m to a (user, correct) answer pair. Inputs
// arrive untyped because answers come straight out of decoded JSON; every
// metric normalizes defensively and returns Incomparable instead of failing.
func CountMistakes(m Metric, user, correct any) int {
	switch m {
	case MetricBooleanCorrect:
		return booleanCorrect(user, correct)
	case MetricSetDistance:
		return setDistance(user, correct)
	case MetricPairMismatchCount:
		return pairMismatchCount(user, correct)
	case MetricCompactTextEqual:
		return compactTextEqual(user, correct)
	case MetricHammingDigits:
		return hammingDigits(user, correct)
	}
	return Incomparable
}

func booleanCorrect(user, correct any) int {
	u, uok := asString(user)
	c, cok := asString(correct)
	if !uok || !cok {
		return Incomparable
	}
	if u == c {
		return 0
	}
	return 1
}

// setDistance is max(missing, extra) between the user and correct sets.
func setDistance(user, correct any) int {
	us, uok := asStringSlice(user)
	cs, cok := asStringSlice(correct)
	if !uok || !cok {
		return Incomparable
	}
	userSet := toSet(us)
	correctSet := toSet(cs)
	missing := 0
	for k := range correctSet {
		if _, ok := userSet[k]; !ok {
			missing++
		}
	}
	extra := 0
	for k := range userSet {
		if _, ok := correctSet[k]; !ok {
			extra++
		}
	}
	if missing > extra {
		return missing
	}
	return extra
}

// pairMismatchCount counts correct-map keys the user mapped differently.
// A key absent from the user map is a mismatch.
func pairMismatchCount(user, correct any) int {
	um, uok := asStringMap(user)
	cm, cok := asStringMap(correct)
	if !uok || !cok {
		return Incomparable
	}
	mismatches := 0
	for k, want := range cm {
		got, ok := um[k]
		if !ok || got != want {
			mismatches++
		}
	}
	return mismatches
}

func compactTextEqual(user, correct any) int {
	u, uok := asString(user)
	c, cok := asString(correct)
	if !uok || !cok {
		return Incomparable
	}
	un := compactText(u)
	cn := compactText(c)
	if un == "" || cn == "" {
		return Incomparable
	}
	if un == cn {
		return 0
	}
	return 1
}

// hammingDigits is the length difference plus positional mismatches over the
// common prefix, after whitespace removal. Non-digit content makes the pair
// incomparable.
func hammingDigits(user, correct any) int {
	u, uok := digitsOnly(user)
	c, cok := digitsOnly(correct)
	if !uok || !cok {
		return Incomparable
	}
	ur := []rune(u)
	cr := []rune(c)
	n := len(ur)
	if len(cr) < n {
		n = len(cr)
	}
	mistakes := abs(len(ur) - len(cr))
	for i := 0; i < n; i++ {
		if ur[i] != cr[i] {
			mistakes++
		}
	}
	return mistakes
}

// --- normalization helpers ---

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asStringSlice(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func asStringMap(v any) (map[string]string, bool) {
	switch t := v.(type) {
	case map[string]string:
		return t, true
	case map[string]any:
		out := make(map[string]string, len(t))
		for k, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

// compactText trims, collapses internal whitespace to single spaces and
// lowercases.
func compactText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func digitsOnly(v any) (string, bool) {
	s, ok := asString(v)
	if !ok {
		return "", false
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if r < '0' || r > '9' {
			return "", false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
