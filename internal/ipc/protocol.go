package ipc

// Request is one transport command sent to the owning reader process.
// Text carries the replacement text for "load"; Value carries the new
// interval for "speed".
type Request struct {
	Command string `json:"command"`
	Text    string `json:"text,omitempty"`
	Value   int    `json:"value,omitempty"`
}

// Response reports command disposition plus a playback snapshot.
type Response struct {
	OK       bool    `json:"ok"`
	State    string  `json:"state,omitempty"`
	Phrase   string  `json:"phrase,omitempty"`
	Index    int     `json:"index,omitempty"`
	Total    int     `json:"total,omitempty"`
	Progress float64 `json:"progress,omitempty"`
	Notice   string  `json:"notice,omitempty"`
	Message  string  `json:"message,omitempty"`
	Error    string  `json:"error,omitempty"`
}
