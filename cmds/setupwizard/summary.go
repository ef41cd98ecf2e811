package main

import (
	"fmt"

	ui "github.com/gizak/termui/v3"

	"github.com/lumonode/setupwizard/pkg/menu"
	"github.com/lumonode/setupwizard/pkg/wizard"
)

// summaryMessage renders the final result as one line. Errors trump
// everything; a connected-but-not-activated run still counts as
// incomplete.
func summaryMessage(r wizard.Result) string {
	if msg, ok := r["error"].(string); ok && msg != "" {
		return fmt.Sprintf("❌ %v", msg)
	}
	if r.Bool("activated") {
		return "✅ Device activated and ready!"
	}
	if r.Bool("connected") {
		return fmt.Sprintf("✅ Connected to network. IP: %v", r["ip"])
	}
	return "⚠️  Setup incomplete."
}

func (a *app) summaryStep(r wizard.Result, uiEvents <-chan ui.Event) {
	menu.DisplayResult([]string{"Setup Summary", "", summaryMessage(r)}, uiEvents)
}
