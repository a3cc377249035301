package biquad

// Bank runs one set of coefficients over several independent channels.
// Each channel keeps its own delay state.
type Bank struct {
	coeffs   Coefficients
	sections []Section
}

// NewBank returns a bank of channels sections initialized to c.
func NewBank(channels int, c Coefficients) *Bank {
	b := &Bank{}
	b.Resize(channels)
	b.SetCoefficients(c)

	return b
}

// Resize changes the channel count. Existing channel state is kept when the
// count is unchanged; otherwise all state is cleared.
func (b *Bank) Resize(channels int) {
	if channels < 0 {
		channels = 0
	}

	if channels == len(b.sections) {
		return
	}

	b.sections = make([]Section, channels)
	for i := range b.sections {
		b.sections[i].Coefficients = b.coeffs
	}
}

// SetCoefficients replaces the coefficients of every channel without
// touching delay state.
func (b *Bank) SetCoefficients(c Coefficients) {
	b.coeffs = c
	for i := range b.sections {
		b.sections[i].Coefficients = c
	}
}

// Coefficients returns the shared coefficients.
func (b *Bank) Coefficients() Coefficients {
	return b.coeffs
}

// Channels returns the number of channels.
func (b *Bank) Channels() int {
	return len(b.sections)
}

// ProcessBlock filters buf in place using channel ch's state.
// Out-of-range channels are left untouched.
func (b *Bank) ProcessBlock(ch int, buf []float64) {
	if ch < 0 || ch >= len(b.sections) {
		return
	}

	b.sections[ch].ProcessBlock(buf)
}

// Section returns the section for channel ch.
func (b *Bank) Section(ch int) *Section {
	return &b.sections[ch]
}

// Reset clears every channel's delay state.
func (b *Bank) Reset() {
	for i := range b.sections {
		b.sections[i].Reset()
	}
}
