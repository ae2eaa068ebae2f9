package form

import "slices"

type (
	// Rule is a named validation predicate over a control value.
	Rule struct {
		Name  string
		Valid func(value string) bool
	}

	// State is the externally visible state of a control.
	State struct {
		Value      string
		Touched    bool
		Dirty      bool
		Violations []string
	}

	// Control tracks a single form value, its interaction flags and its rules.
	// Violations are reported in rule declaration order.
	Control struct {
		value    string
		touched  bool
		dirty    bool
		disabled bool
		rules    []Rule
		binding  Binding
	}

	// Group is an ordered set of named controls.
	Group struct {
		names    []string
		controls map[string]*Control
	}
)

func NewControl(initial string, rules ...Rule) *Control {
	return &Control{
		value: initial,
		rules: rules,
	}
}

func (c *Control) Value() string { return c.value }
func (c *Control) Touched() bool { return c.touched }
func (c *Control) Dirty() bool   { return c.dirty }

// SetValue records a value coming from the view. The control becomes dirty.
func (c *Control) SetValue(value string) {
	c.value = value
	c.dirty = true
}

// Reset sets the value programmatically, pushes it to the bound view and
// clears the interaction flags.
func (c *Control) Reset(value string) {
	c.value = value
	c.touched = false
	c.dirty = false
	if c.binding != nil {
		c.binding.WriteValue(value)
	}
}

// Restore rehydrates a control from a previously captured state. Violations
// in s are ignored; they are always recomputed.
func (c *Control) Restore(s State) {
	c.value = s.Value
	c.touched = s.Touched
	c.dirty = s.Dirty
	if c.binding != nil {
		c.binding.WriteValue(s.Value)
	}
}

func (c *Control) MarkTouched() {
	c.touched = true
}

func (c *Control) SetDisabled(disabled bool) {
	c.disabled = disabled
	if c.binding != nil {
		c.binding.SetDisabled(disabled)
	}
}

func (c *Control) Disabled() bool { return c.disabled }

// Violations returns the names of the rules the current value breaks.
func (c *Control) Violations() []string {
	var violated []string
	for _, r := range c.rules {
		if !r.Valid(c.value) {
			violated = append(violated, r.Name)
		}
	}
	return violated
}

func (c *Control) Valid() bool {
	return len(c.Violations()) == 0
}

func (c *Control) HasError(rule string) bool {
	return slices.Contains(c.Violations(), rule)
}

// FirstError returns the first violated rule name, or "" when valid.
func (c *Control) FirstError() string {
	if v := c.Violations(); len(v) > 0 {
		return v[0]
	}
	return ""
}

// ShowErrors reports whether the user has interacted with the control enough
// for its errors to be displayed.
func (c *Control) ShowErrors() bool {
	return c.touched || c.dirty
}

func (c *Control) State() State {
	return State{
		Value:      c.value,
		Touched:    c.touched,
		Dirty:      c.dirty,
		Violations: c.Violations(),
	}
}

// Bind connects the control to a view: the current value and disabled flag
// are pushed to the binding, and the binding's change and touch notifications
// update the control.
func (c *Control) Bind(b Binding) {
	c.binding = b
	b.WriteValue(c.value)
	b.OnChange(c.SetValue)
	b.OnTouched(c.MarkTouched)
	b.SetDisabled(c.disabled)
}

func NewGroup() *Group {
	return &Group{controls: map[string]*Control{}}
}

// Add registers a control under name, replacing any previous control with that name.
func (g *Group) Add(name string, c *Control) *Group {
	if _, ok := g.controls[name]; !ok {
		g.names = append(g.names, name)
	}
	g.controls[name] = c
	return g
}

// Control returns the named control or nil.
func (g *Group) Control(name string) *Control {
	return g.controls[name]
}

func (g *Group) Names() []string {
	return slices.Clone(g.names)
}

func (g *Group) Valid() bool {
	for _, name := range g.names {
		if !g.controls[name].Valid() {
			return false
		}
	}
	return true
}

func (g *Group) MarkAllAsTouched() {
	for _, name := range g.names {
		g.controls[name].MarkTouched()
	}
}

func (g *Group) Values() map[string]string {
	values := make(map[string]string, len(g.names))
	for _, name := range g.names {
		values[name] = g.controls[name].Value()
	}
	return values
}
