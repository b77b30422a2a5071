package log

import (
	"context"
	"fmt"
	"strings"
)

// lineBreakEscaper rewrites the characters that could start a forged log line.
var lineBreakEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

func sanitizeLogString(s string) string {
	return lineBreakEscaper.Replace(s)
}

// SafeError logs err at error level under msg. Codec errors quote raw input
// lines, so in production only the error's dynamic type is recorded.
func SafeError(logger Logger, ctx context.Context, msg string, err error, production bool) {
	if logger == nil || err == nil || !logger.Enabled(LevelError) {
		return
	}

	field := Err(err)
	if production {
		field = String("error_type", fmt.Sprintf("%T", err))
	}

	logger.Log(ctx, LevelError, msg, field)
}
