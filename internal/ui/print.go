package ui

import (
	"fmt"
	"io"
)

// PrintCommandHeader writes a styled command header to w
func PrintCommandHeader(w io.Writer, title, command string, params ...Detail) {
	_, _ = fmt.Fprintln(w, NewHeader(title, command, params...).Render())
	_, _ = fmt.Fprintln(w)
}

// PrintSuccess writes a styled success result to w
func PrintSuccess(w io.Writer, title string, details ...Detail) {
	_, _ = fmt.Fprintln(w, NewSuccessResult(title, details...).Render())
}

// PrintFailure writes a styled failure result to w
func PrintFailure(w io.Writer, title string, err error, hints ...string) {
	_, _ = fmt.Fprintln(w, NewFailureResult(title, err, hints...).Render())
}

// PrintWarning writes a styled warning result to w
func PrintWarning(w io.Writer, title string, details ...Detail) {
	_, _ = fmt.Fprintln(w, NewWarningResult(title, details...).Render())
}
