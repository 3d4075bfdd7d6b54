package crawl

import "sync"

// Frontier is a breadth-first URL queue that remembers every URL ever pushed.
// A URL already queued or already popped cannot be queued again.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	queue []string
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		seen: make(map[string]struct{}),
	}
}

// Push appends a URL to the back of the queue.
// Returns false if the URL has been pushed before.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[url]; ok {
		return false
	}
	f.seen[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the URL at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued at any point.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.seen[url]
	return ok
}
