package main

import (
	"fmt"
	"log/slog"
	"os"

	"expectgroup/internal/errors"
	"expectgroup/internal/slogutil"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportFailure(err)
		os.Exit(1)
	}
}

// reportFailure logs err on stderr. It ignores -q: a failed run always says why.
func reportFailure(err error) {
	logger := slogutil.NewLogger(os.Stderr, slog.LevelError)

	attrs := []any{"error", err.Error()}
	if kind := errors.KindOf(err); kind != "" {
		attrs = append(attrs, "kind", string(kind))
	}
	logger.Error("Command execution failed", attrs...)

	for _, fix := range errors.GetSuggestedFixes(errors.CodeOf(err)) {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", fix.Description)
		if fix.Command != "" {
			fmt.Fprintf(os.Stderr, "      $ %s\n", fix.Command)
		}
	}
}
