package smded

import "log"

// ProjectLoad is an in-flight background project load. Parsing a
// project is I/O-bound, so it runs on its own goroutine while the
// owner polls Ready from the draw loop without ever blocking it.
type ProjectLoad struct {
	done chan struct{}
	reg  *Registry
	err  error
}

// Load starts loading the project at dir on a worker goroutine.
func Load(dir string, logger *log.Logger) *ProjectLoad {
	l := &ProjectLoad{done: make(chan struct{})}
	go func() {
		l.reg, l.err = LoadProject(dir, logger)
		close(l.done)
	}()
	return l
}

// Ready reports whether the load has finished, without blocking.
func (l *ProjectLoad) Ready() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Result returns the loaded registry, blocking until the worker
// finishes. Poll Ready first to avoid blocking a draw loop.
func (l *ProjectLoad) Result() (*Registry, error) {
	<-l.done
	return l.reg, l.err
}
