// Package ui renders styled terminal output for the haxomatic CLI.
//
// Output follows a "run once and exit" pattern: a header describing the
// command, followed by a single success, warning or failure box. Boxes are
// drawn with lipgloss and sized to the terminal width, clamped between
// MinTerminalWidth and MaxContentWidth.
//
//	ui.PrintCommandHeader(os.Stdout, "Gadget Analysis", "haxomatic analyze",
//	    ui.Detail{Key: "Image", Value: path},
//	)
//	ui.PrintSuccess(os.Stdout, "Gadgets resolved",
//	    ui.Detail{Key: "Chipset", Value: "BK7231T"},
//	)
package ui
