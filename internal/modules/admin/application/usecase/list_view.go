package usecase

// ListState is the lifecycle of a collection shown by a view.
type ListState string

const (
	ListStateLoading ListState = "loading"
	ListStateEmpty   ListState = "empty"
	ListStateReady   ListState = "ready"
	ListStateFailed  ListState = "failed"
)

// ListView is what a list container renders: a loader, an empty-state message,
// an error, or the rows.
type ListView[T any] struct {
	State ListState
	Items []T
	Error string
}

// LoadingList is the placeholder rendered while the collection is pending.
func LoadingList[T any]() ListView[T] {
	return ListView[T]{State: ListStateLoading}
}

// NewListView derives the state from a fetch result. failure is the message
// shown when err is not nil.
func NewListView[T any](items []T, err error, failure string) ListView[T] {
	if err != nil {
		return ListView[T]{State: ListStateFailed, Error: failure}
	}
	if len(items) == 0 {
		return ListView[T]{State: ListStateEmpty, Items: []T{}}
	}
	return ListView[T]{State: ListStateReady, Items: items}
}

func (v ListView[T]) Loading() bool { return v.State == ListStateLoading }
func (v ListView[T]) Empty() bool   { return v.State == ListStateEmpty }
func (v ListView[T]) Failed() bool  { return v.State == ListStateFailed }
func (v ListView[T]) Ready() bool   { return v.State == ListStateReady }
