package color

import "os"

// Code is an ANSI SGR escape sequence
type Code string

const (
	Reset     Code = "\033[0m"
	Red       Code = "\033[31m"
	Green     Code = "\033[32m"
	Yellow    Code = "\033[33m"
	Blue      Code = "\033[34m"
	Cyan      Code = "\033[36m"
	Gray      Code = "\033[90m"
	BrightRed Code = "\033[91m"
)

// enabled is off under NO_COLOR or without a capable TERM until EnableColor says otherwise
var enabled = os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "" && os.Getenv("TERM") != "dumb"

func EnableColor(on bool) {
	enabled = on
}

func IsColorEnabled() bool {
	return enabled
}

// Paint wraps text in c, or returns it unchanged when color is disabled
func (c Code) Paint(text string) string {
	if !enabled || text == "" {
		return text
	}
	return string(c) + text + string(Reset)
}

func RedText(text string) string       { return Red.Paint(text) }
func BrightRedText(text string) string { return BrightRed.Paint(text) }
func GreenText(text string) string     { return Green.Paint(text) }
func YellowText(text string) string    { return Yellow.Paint(text) }
func BlueText(text string) string      { return Blue.Paint(text) }
func CyanText(text string) string      { return Cyan.Paint(text) }
func GrayText(text string) string      { return Gray.Paint(text) }
