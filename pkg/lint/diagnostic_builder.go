package lint

import "github.com/yaklabco/emblem/pkg/diag"

// NewDiagnosticAt starts a warning from lint id anchored at src.
func NewDiagnosticAt(id string, src diag.Src, message string) *diag.Builder {
	return diag.Warn(message).Lint(id).Src(src)
}
