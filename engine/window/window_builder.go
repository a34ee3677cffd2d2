package window

// WindowBuilderOption configures the window before the platform window is created.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text.
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithMode sets the screen mode the window opens in. F11 toggles it at runtime.
//
// Parameters:
//   - mode: ModeWindowed or ModeFullscreenBorderless
//
// Returns:
//   - WindowBuilderOption: the option
func WithMode(mode Mode) WindowBuilderOption {
	return func(w *engineWindow) {
		w.mode = mode
	}
}

// WithSize sets the windowed client size in pixels. Borderless fullscreen ignores it
// and restores it when toggled back.
//
// Parameters:
//   - width: client width
//   - height: client height
//
// Returns:
//   - WindowBuilderOption: the option
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}

// WithMinSize bounds how small the user can drag the window.
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = width
		w.minHeight = height
	}
}
