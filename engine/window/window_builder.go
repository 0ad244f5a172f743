package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size in screen coordinates.
//
// Parameters:
//   - width: initial width
//   - height: initial height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}

// WithMinSize sets the smallest size the user can resize the window to.
//
// Parameters:
//   - minWidth: minimum width
//   - minHeight: minimum height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(minWidth, minHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = minWidth
		w.minHeight = minHeight
	}
}

// WithMaxSize sets the largest size the user can resize the window to.
// Unlimited by default.
//
// Parameters:
//   - maxWidth: maximum width
//   - maxHeight: maximum height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = maxWidth
		w.maxHeight = maxHeight
	}
}
