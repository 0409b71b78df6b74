package crawl

import "github.com/fwojciec/sitepdf"

// Frontier is the work queue of a single crawl run. Targets are popped in
// insertion order, giving breadth-first traversal. It tracks which URLs are
// waiting in the queue and which have already been visited so that no URL
// is queued twice or processed twice.
//
// Frontier is owned by one crawl loop and is not safe for concurrent use.
type Frontier struct {
	queue    []sitepdf.CrawlTarget
	enqueued map[string]struct{}
	visited  map[string]struct{}
}

// NewFrontier returns an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		enqueued: make(map[string]struct{}),
		visited:  make(map[string]struct{}),
	}
}

// Push appends a target to the queue.
// Returns false if the URL is already queued or has been visited.
func (f *Frontier) Push(target sitepdf.CrawlTarget) bool {
	if f.Seen(target.URL) {
		return false
	}
	f.enqueued[target.URL] = struct{}{}
	f.queue = append(f.queue, target)
	return true
}

// Pop removes and returns the oldest target. Its URL stops counting as
// queued whether or not it is then visited.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (sitepdf.CrawlTarget, bool) {
	if len(f.queue) == 0 {
		return sitepdf.CrawlTarget{}, false
	}
	target := f.queue[0]
	f.queue[0] = sitepdf.CrawlTarget{}
	f.queue = f.queue[1:]
	delete(f.enqueued, target.URL)
	return target, true
}

// Visit marks url as visited.
// Returns false if it had already been visited.
func (f *Frontier) Visit(url string) bool {
	if _, ok := f.visited[url]; ok {
		return false
	}
	f.visited[url] = struct{}{}
	return true
}

// Len returns the number of targets in the queue.
func (f *Frontier) Len() int {
	return len(f.queue)
}

// Seen returns true if url is queued or has been visited.
func (f *Frontier) Seen(url string) bool {
	if _, ok := f.enqueued[url]; ok {
		return true
	}
	_, ok := f.visited[url]
	return ok
}
