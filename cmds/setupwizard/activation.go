package main

import (
	"fmt"

	ui "github.com/gizak/termui/v3"

	"github.com/lumonode/setupwizard/pkg/activation"
	"github.com/lumonode/setupwizard/pkg/menu"
	"github.com/lumonode/setupwizard/pkg/state"
	"github.com/lumonode/setupwizard/pkg/wizard"
)

func (a *app) activationEntries() []menu.Entry {
	return []menu.Entry{&EnterKeyEntry{}, &RecheckEntry{}, &ContinueEntry{}}
}

// activationStep checks the stored API key, or mints an activation code
// the operator can register with support, and lets them enter a key.
// The device counts as activated once a validated key is on file.
func (a *app) activationStep(uiEvents <-chan ui.Event) wizard.Result {
	st := a.store.Load()

	if key := st.GetString(state.KeyAPIKey); key != "" {
		_, msg := a.client.CheckKey(key)
		if _, err := menu.DisplayResult([]string{msg}, uiEvents); err != nil {
			return a.activationResult(err.Error())
		}
	} else {
		code := activation.GenerateCode()
		st[state.KeyActivationCode] = code
		lines := []string{"No API key found.", fmt.Sprintf("Activation code: %s", code)}
		if err := a.store.Save(st); err != nil {
			lines = []string{err.Error()}
		}
		if _, err := menu.DisplayResult(lines, uiEvents); err != nil {
			return a.activationResult(err.Error())
		}
	}

	for {
		entry, err := menu.DisplayMenu("Device Activation", "Choose an option", a.activationEntries(), uiEvents)
		if err != nil {
			return a.activationResult(err.Error())
		}

		switch entry.(type) {
		case *EnterKeyEntry:
			key, err := menu.NewInputWindow("Enter API key:", menu.AlwaysValid, uiEvents)
			if err != nil {
				return a.activationResult(err.Error())
			}
			if key == "<Esc>" {
				continue
			}
			if key == "" {
				if _, err := menu.DisplayResult([]string{"Please enter a key."}, uiEvents); err != nil {
					return a.activationResult(err.Error())
				}
				continue
			}
			active, msg := a.client.CheckKey(key)
			if active {
				st := a.store.Load()
				st[state.KeyAPIKey] = key
				if err := a.store.Save(st); err != nil {
					msg = err.Error()
				}
			}
			if _, err := menu.DisplayResult([]string{msg}, uiEvents); err != nil {
				return a.activationResult(err.Error())
			}
		case *RecheckEntry:
			key := a.store.Load().GetString(state.KeyAPIKey)
			if key == "" {
				if _, err := menu.DisplayResult([]string{"No API key on file. Enter one first."}, uiEvents); err != nil {
					return a.activationResult(err.Error())
				}
				continue
			}
			_, msg := a.client.CheckKey(key)
			if _, err := menu.DisplayResult([]string{msg}, uiEvents); err != nil {
				return a.activationResult(err.Error())
			}
		case *ContinueEntry:
			return a.activationResult("")
		}
	}
}

// activationResult reports whether a key made it to disk; that is what
// activated means here, the server may still be unreachable later.
func (a *app) activationResult(errMsg string) wizard.Result {
	r := wizard.Result{"activated": a.store.Load().GetString(state.KeyAPIKey) != ""}
	if errMsg != "" {
		r["error"] = errMsg
	}
	return r
}
