package engine

import "sync"

// keyedMutex serializes turns per conversation key. Two messages from the
// same (tenant, phone) are processed in arrival order; different keys run
// concurrently. Mutexes are kept for the life of the process, bounded by
// the number of distinct conversations.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: map[string]*sync.Mutex{}}
}

// Lock acquires the mutex for key and returns its unlock function. The
// caller must defer the unlock so it releases on every exit path.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
