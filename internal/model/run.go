package model

import "time"

// Run is one recorded invocation of the packing engine. History rows are the
// only place wall-clock time appears; the artifacts themselves stay
// timestamp-free so they reproduce byte-for-byte.
type Run struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Root      string    `json:"root"`
	Receipt   Receipt   `json:"receipt"`
	CreatedAt time.Time `json:"created_at"`
}
