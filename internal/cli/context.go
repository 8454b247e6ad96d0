package cli

import (
	"fmt"
	"os"

	"github.com/trajlog-project/trajlog/pkg/color"
)

func fmtErr(format string, args ...any) {
	// Colorize the error prefix
	prefix := "trajlog: "
	if color.Enabled() {
		prefix = color.Error("trajlog:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
