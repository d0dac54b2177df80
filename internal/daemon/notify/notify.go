// Package notify tells the status-bar process to repaint.
package notify

// Notifier triggers a best-effort UI refresh. Implementations never block
// for long and never report errors.
type Notifier interface {
	Notify()
}

// Func adapts a function to Notifier.
type Func func()

// Notify calls f.
func (f Func) Notify() { f() }

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

// Notify calls Notify on each member.
func (m Multi) Notify() {
	for _, n := range m {
		if n != nil {
			n.Notify()
		}
	}
}

// Nop is a Notifier that does nothing.
var Nop Notifier = Func(func() {})
