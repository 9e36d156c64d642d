package models

// Completion is the outcome of one call to a language model. Exactly one of Text and Err is meaningful.
type Completion struct {
	Text string
	Err  error
}

// OK reports whether the completion succeeded.
func (c Completion) OK() bool {
	return c.Err == nil
}
