package form

// Binding is the value-accessor contract that lets a field component take part
// in external form state. It is implemented by TextField and PasswordField and
// consumed by Control.Bind.
type Binding interface {
	// Value returns the value currently held by the view.
	Value() string
	// WriteValue sets the view value from the model without notifying listeners.
	WriteValue(value string)
	// OnChange registers the callback invoked on every input event.
	OnChange(fn func(value string))
	// OnTouched registers the callback invoked when the view loses focus.
	OnTouched(fn func())
	SetDisabled(disabled bool)
}

// accessor is the shared Binding implementation embedded by the field components.
type accessor struct {
	value     string
	disabled  bool
	onChange  func(string)
	onTouched func()
	watchers  []func(string)
}

func newAccessor() accessor {
	return accessor{
		onChange:  func(string) {},
		onTouched: func() {},
	}
}

func (a *accessor) Value() string { return a.value }

func (a *accessor) WriteValue(value string) {
	a.value = value
}

func (a *accessor) OnChange(fn func(string)) {
	if fn == nil {
		fn = func(string) {}
	}
	a.onChange = fn
}

func (a *accessor) OnTouched(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	a.onTouched = fn
}

func (a *accessor) SetDisabled(disabled bool) {
	a.disabled = disabled
}

func (a *accessor) Disabled() bool { return a.disabled }

// Watch subscribes fn to value changes made through Input.
func (a *accessor) Watch(fn func(string)) {
	a.watchers = append(a.watchers, fn)
}

// Input handles an input event: the value is stored, then the change callback
// and the watchers are notified.
func (a *accessor) Input(value string) {
	a.value = value
	a.onChange(value)
	for _, fn := range a.watchers {
		fn(value)
	}
}

// Blur handles the loss of focus.
func (a *accessor) Blur() {
	a.onTouched()
}
