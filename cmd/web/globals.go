package web

import "github.com/JackWithOneEye/metroview/internal/pan"

// Globals is what a client needs to know before it opens a pan session.
type Globals struct {
	Name   string     `json:"name"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Tuning pan.Tuning `json:"tuning"`
}

// View is a saved viewport centre in content units.
type View struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Saved bool `json:"saved"`
}
