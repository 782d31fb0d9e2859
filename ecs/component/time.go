package component

// Time is the frame clock resource. The driver advances it once per frame,
// before the pipeline runs.
type Time struct {
	Delta   float32
	Elapsed float64
	Frame   uint64
}

// Advance moves the clock forward by dt seconds.
func (t *Time) Advance(dt float32) {
	if t == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	t.Delta = dt
	t.Elapsed += float64(dt)
	t.Frame++
}
