package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

const notifyTTL = 3 * time.Second

// notifier shows short-lived messages in the status bar.
type notifier struct {
	label *widget.Label
	ttl   time.Duration

	mu  sync.Mutex
	gen int
}

func newNotifier() *notifier {
	return &notifier{label: widget.NewLabel(""), ttl: notifyTTL}
}

// Notify replaces the current message; it clears itself after the TTL unless
// a newer message arrived first.
func (n *notifier) Notify(msg string) {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.mu.Unlock()

	n.label.SetText(msg)
	time.AfterFunc(n.ttl, func() {
		fyne.Do(func() {
			n.mu.Lock()
			current := n.gen == gen
			n.mu.Unlock()
			if current {
				n.label.SetText("")
			}
		})
	})
}

func (n *notifier) Text() string {
	return n.label.Text
}
