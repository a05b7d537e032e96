package fsops

import "encoding/json"

// Result is the uniform outcome of a store operation.
type Result struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Path    string   `json:"path,omitempty"`
	Content *string  `json:"content,omitempty"`
	Files   []string `json:"files,omitempty"`
}

// Failure returns an unsuccessful Result carrying msg.
func Failure(msg string) Result {
	return Result{Success: false, Message: msg}
}

// MarshalJSON keeps an empty, non-nil file list as [] instead of dropping it.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	if r.Files == nil {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		Files []string `json:"files"`
	}{plain(r), r.Files})
}

// JSON returns the compact JSON form relayed to the model.
func (r Result) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		// Result holds only strings and bools.
		return `{"success":false,"message":"unencodable result"}`
	}
	return string(b)
}
