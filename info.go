//go:build !ios && !android && (amd64 || arm64)

package tdjson

// LibraryInfo describes the state of a Bridge's binding.
type LibraryInfo struct {
	Path        string  `json:"path,omitempty"`
	Handle      uintptr `json:"handle"`
	ClientCount int     `json:"clientCount"`
	Initialized bool    `json:"initialized"`
	HasCreate   bool    `json:"hasCreate"`
	HasSend     bool    `json:"hasSend"`
	HasReceive  bool    `json:"hasReceive"`
	HasExecute  bool    `json:"hasExecute"`
	HasDestroy  bool    `json:"hasDestroy"`
}

// LibraryInfo reports which entry points are bound and how many clients are
// registered. It never loads anything.
func (b *Bridge) LibraryInfo() LibraryInfo {
	st := b.binder.Status()
	return LibraryInfo{
		Path:        st.Path,
		Handle:      st.Handle,
		ClientCount: b.clients.Count(),
		Initialized: st.Initialized,
		HasCreate:   st.HasCreate,
		HasSend:     st.HasSend,
		HasReceive:  st.HasReceive,
		HasExecute:  st.HasExecute,
		HasDestroy:  st.HasDestroy,
	}
}

// GetLibraryInfo reports on the default Bridge.
func GetLibraryInfo() LibraryInfo {
	return Default().LibraryInfo()
}
