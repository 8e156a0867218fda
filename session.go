package main

import "sync"

// The bomb list being edited through the HTTP API. It lives only in memory.
var (
	sessionBombs  []Bomb
	sessionResult *Result
	sessionMutex  sync.RWMutex
)

// addSessionBomb appends a bomb and invalidates the last result
func addSessionBomb(b Bomb) []Bomb {
	sessionMutex.Lock()
	defer sessionMutex.Unlock()

	// Copy on write so snapshots handed out earlier never change
	bombs := make([]Bomb, len(sessionBombs), len(sessionBombs)+1)
	copy(bombs, sessionBombs)
	sessionBombs = append(bombs, b)
	sessionResult = nil
	return sessionBombs
}

// setSessionBombs replaces the bomb list
func setSessionBombs(bombs []Bomb) {
	sessionMutex.Lock()
	defer sessionMutex.Unlock()

	sessionBombs = append([]Bomb(nil), bombs...)
	sessionResult = nil
}

// clearSession drops every bomb and the last result
func clearSession() {
	sessionMutex.Lock()
	defer sessionMutex.Unlock()

	sessionBombs = nil
	sessionResult = nil
}

// snapshotSession returns the current bombs and last result.
// The returned slice must not be modified.
func snapshotSession() ([]Bomb, *Result) {
	sessionMutex.RLock()
	defer sessionMutex.RUnlock()

	return sessionBombs, sessionResult
}

// storeSessionResult records a result computed for bombs, unless the list
// changed in the meantime.
func storeSessionResult(bombs []Bomb, result Result) {
	sessionMutex.Lock()
	defer sessionMutex.Unlock()

	if len(bombs) != len(sessionBombs) || (len(bombs) > 0 && &bombs[0] != &sessionBombs[0]) {
		return
	}
	sessionResult = &result
}
