package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Color modes accepted by the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ResolveColorMode determines whether to style output from the --color flag
// and the detected terminal state:
//   - "never":  never style
//   - "always": always style
//   - anything else: style only when isTTY is true
//
// NO_COLOR in the environment disables styling in auto mode.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal (including Cygwin/MSYS ptys).
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
