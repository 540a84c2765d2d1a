package util

import "fmt"

type Painter string

const (
	NoPaint    Painter = ""
	Foreground Painter = "\u001b[38;"
	Background Painter = "\u001b[48;"
	Bold       Painter = "\u001b[1m"
	Normalizer Painter = "\u001b[0m"
	CSI                = "\u001b["
)

var numeralCache = func() [][]byte {
	val := make([][]byte, 256)
	for i := range val {
		val[i] = []byte(fmt.Sprint(i))
	}
	return val
}()

// RGB paints the string with a true color rgb painter.
// Equivalent to fmt.Sprintf("%s2;%d;%d;%dm", p, r, g, b) but a lot faster,
// which matters when every cell of every frame needs one.
func RGB(r, g, b byte, p Painter) string {
	buf := make([]byte, 0, len(p)+14)
	buf = append(buf, p...)
	buf = append(buf, "2;"...)
	buf = append(buf, numeralCache[r]...)
	buf = append(buf, ';')
	buf = append(buf, numeralCache[g]...)
	buf = append(buf, ';')
	buf = append(buf, numeralCache[b]...)
	return string(append(buf, 'm'))
}

// MoveUp returns the sequence that puts the cursor n lines up, ready to
// draw the next frame over the previous one.
func MoveUp(n int) string {
	return fmt.Sprintf("\n%s%dA", CSI, n)
}
