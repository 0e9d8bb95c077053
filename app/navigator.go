package app

import (
	"sync/atomic"

	"github.com/soocke/facelog-go/domain/screen"
)

// Navigator is the single-screen route: its params come from the command
// line and GoBack asks the app to exit. GoBack may be called from any
// goroutine; the Tk thread polls Left.
type Navigator struct {
	params screen.Params
	left   atomic.Bool
	backs  atomic.Int32
}

func NewNavigator(p screen.Params) *Navigator { return &Navigator{params: p} }

func (n *Navigator) Params() screen.Params { return n.params }

func (n *Navigator) GoBack() {
	n.backs.Add(1)
	n.left.Store(true)
}

// Left reports whether GoBack has been requested.
func (n *Navigator) Left() bool { return n.left.Load() }

// Backs counts GoBack calls.
func (n *Navigator) Backs() int { return int(n.backs.Load()) }

var _ screen.Navigator = (*Navigator)(nil)
