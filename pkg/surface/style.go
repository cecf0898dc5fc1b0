package surface

// Color represents a terminal color. Values 0-255 are palette colors;
// -1 is the terminal default.
type Color int32

const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
	ColorGray    Color = 8
)

// Style describes cell appearance. The zero value is not meaningful;
// use DefaultStyle as the base and derive with the builder methods.
type Style struct {
	Fg        Color
	Bg        Color
	IsBold    bool
	IsReverse bool
	IsDim     bool
}

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return Style{Fg: ColorDefault, Bg: ColorDefault}
}

// Foreground returns a copy with the foreground color set.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns a copy with the background color set.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// Bold returns a copy with bold set.
func (s Style) Bold(v bool) Style {
	s.IsBold = v
	return s
}

// Reverse returns a copy with reverse video set.
func (s Style) Reverse(v bool) Style {
	s.IsReverse = v
	return s
}

// Dim returns a copy with dim set.
func (s Style) Dim(v bool) Style {
	s.IsDim = v
	return s
}
