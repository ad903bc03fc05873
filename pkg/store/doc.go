// Package store provides the shared application state container.
//
// A Store holds one State value, replaces it by shallow merge on Update and
// synchronously notifies every listener with the new state:
//
//	s := store.New(store.State{"todos": []Todo{}, "filter": "all"})
//	s.Subscribe(func(st store.State) error {
//	    return driver.Render()
//	})
//	_ = s.Update(store.State{"filter": "completed"})
//
// Nested values are never merged: callers rebuild a list before handing it to
// Update.
//
// Updates issued from inside a listener are queued and delivered after the
// current pass, one revision at a time, so every listener observes every
// revision in order without recursive notification.
package store
