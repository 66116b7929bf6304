package wave

// Fields holds one time level of both evolved quantities.
type Fields struct {
	PP []float64
	Pi []float64
}

func NewFields(n int) *Fields {
	return &Fields{
		PP: make([]float64, n),
		Pi: make([]float64, n),
	}
}

func (f *Fields) CopyFrom(src *Fields) {
	copy(f.PP, src.PP)
	copy(f.Pi, src.Pi)
}

func (f *Fields) Clone() *Fields {
	c := NewFields(len(f.PP))
	c.CopyFrom(f)
	return c
}
