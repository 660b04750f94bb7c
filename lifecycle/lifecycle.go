// Package lifecycle holds the shared init/simulation state machine used by
// every peripheral driver on the board: hardware is acquired lazily on the
// first operation that needs it, and a simulation flag elides all physical
// I/O while leaving buffer and state bookkeeping intact.
package lifecycle

// State tracks one-time hardware acquisition for a single driver.
//
// The simulation flag is fixed at construction. Toggling it after setup
// would leave a half-claimed device behind simulated writes, so there is
// deliberately no setter.
type State struct {
	simulate bool
	done     bool
}

// New returns a State. When simulate is true, acquisition closures passed
// to Ensure are skipped and Hardware becomes a no-op.
func New(simulate bool) *State {
	return &State{simulate: simulate}
}

// Ensure runs acquire exactly once. In simulation mode the acquisition is
// skipped but the state still transitions to done, so a simulated driver
// behaves as if fully initialized.
//
// If acquire fails the state stays not-done and the error is returned to
// the operation that triggered setup; Ensure never retries on its own.
func (s *State) Ensure(acquire func() error) error {
	if s.done {
		return nil
	}
	if !s.simulate {
		if err := acquire(); err != nil {
			return err
		}
	}
	s.done = true
	return nil
}

// Hardware runs op only when the driver owns real hardware. In simulation
// mode it returns nil without invoking op.
func (s *State) Hardware(op func() error) error {
	if s.simulate {
		return nil
	}
	return op()
}

// Done reports whether setup has completed.
func (s *State) Done() bool { return s.done }

// Simulated reports whether the driver runs without physical I/O.
func (s *State) Simulated() bool { return s.simulate }
