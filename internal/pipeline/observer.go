package pipeline

// Observer receives progress while a batch runs. Calls arrive on the
// goroutine running the batch.
type Observer interface {
	Step(title string)
	Start(total int)
	Document(out Outcome)
	Finish(stats Stats)
}

type NopObserver struct{}

func (NopObserver) Step(string)      {}
func (NopObserver) Start(int)        {}
func (NopObserver) Document(Outcome) {}
func (NopObserver) Finish(Stats)     {}
