package bindings

const (
	ActionQuit Action = "ui.quit"
)

const (
	ScopeUi   Scope = "ui"
	ScopeHome Scope = "home"
)

// BuiltinActions lists every action the UI knows how to perform.
func BuiltinActions() []Action {
	return []Action{ActionQuit}
}
