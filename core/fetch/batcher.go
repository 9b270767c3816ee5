package fetch

import "github.com/gaurav-prasanna/wikicorpus/core"

// Batcher plans batch sizes for a target article count and drops pages
// that were already collected.
type Batcher struct {
	target   int
	maxBatch int
	items    []core.Article
	seen     map[int64]bool
}

// NewBatcher creates a Batcher that collects target articles in batches of
// at most maxBatch.
func NewBatcher(target, maxBatch int) *Batcher {
	if maxBatch <= 0 || maxBatch > core.MaxBatchSize {
		maxBatch = core.MaxBatchSize
	}
	return &Batcher{
		target:   target,
		maxBatch: maxBatch,
		items:    make([]core.Article, 0, target),
		seen:     make(map[int64]bool),
	}
}

// Add appends articles not seen before, up to the target. It returns how many
// were accepted.
func (b *Batcher) Add(articles ...core.Article) int {
	added := 0
	for _, a := range articles {
		if b.Done() {
			break
		}
		if b.seen[a.ID] {
			continue
		}
		b.seen[a.ID] = true
		b.items = append(b.items, a)
		added++
	}
	return added
}

// Done returns true once the target has been reached.
func (b *Batcher) Done() bool {
	return len(b.items) >= b.target
}

// Next returns the size of the next batch to request.
func (b *Batcher) Next() int {
	return min(b.target-len(b.items), b.maxBatch)
}

// Len returns the number of collected articles.
func (b *Batcher) Len() int {
	return len(b.items)
}

// All returns the collected articles in arrival order.
func (b *Batcher) All() []core.Article {
	return b.items
}
