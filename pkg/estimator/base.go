package estimator

// Base tracks whether an estimator has been fitted. It is meant to be
// embedded. The field is exported so gob can encode it.
type Base struct {
	Trained bool
}

// Fitted reports whether Fit completed successfully at least once.
func (b *Base) Fitted() bool { return b.Trained }

// SetFitted marks the estimator as fitted.
func (b *Base) SetFitted() { b.Trained = true }

// Reset returns the estimator to the unfitted state.
func (b *Base) Reset() { b.Trained = false }
