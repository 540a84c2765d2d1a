package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// Lerp moves a toward b by the fraction t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// indexedByte can be considered an implementation detail of Stretch
type indexedByte struct {
	Idx  int
	Char rune
}

// Stretch stretches a string out so it is exactly toLength+1 characters in
// length, repeating each character in place.
func Stretch(s string, toLength uint8) string {
	runeSet := []rune(s)
	l := len(runeSet)
	if l == 0 {
		return ""
	}
	if l > int(toLength) {
		return string(runeSet[:int(toLength)+1])
	}

	chars := make([]indexedByte, int(toLength)+1)
	for i := range chars {
		chars[i] = indexedByte{Idx: i % l, Char: runeSet[i%l]}
	}

	sort.SliceStable(chars, func(i, j int) bool {
		return chars[i].Idx < chars[j].Idx
	})

	res := make([]rune, 0, len(chars))
	for _, iChar := range chars {
		res = append(res, iChar.Char)
	}

	return string(res)
}
