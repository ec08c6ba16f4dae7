package calendar

import "time"

// LabelLayout formats the month heading.
const LabelLayout = "January 2006"

// Navigator tracks which month is on screen.
type Navigator struct {
	anchor time.Time
	now    func() time.Time
}

// NewNavigator starts at the clock's current time. A nil clock uses time.Now.
func NewNavigator(now func() time.Time) *Navigator {
	if now == nil {
		now = time.Now
	}
	return &Navigator{anchor: now(), now: now}
}

// Anchor returns the current anchor time.
func (n *Navigator) Anchor() time.Time {
	return n.anchor
}

// PreviousMonth moves to day 1 of the previous month.
func (n *Navigator) PreviousMonth() {
	n.shift(-1)
}

// NextMonth moves to day 1 of the next month.
func (n *Navigator) NextMonth() {
	n.shift(1)
}

func (n *Navigator) shift(months int) {
	y, m, _ := n.anchor.Date()
	n.anchor = time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, n.anchor.Location())
}

// GoToday resets the anchor to the current time.
func (n *Navigator) GoToday() {
	n.anchor = n.now()
}

// SetMonth jumps to day 1 of year/month.
func (n *Navigator) SetMonth(year int, month time.Month) {
	n.anchor = time.Date(year, month, 1, 0, 0, 0, 0, n.anchor.Location())
}

// Grid returns the anchor month's cells with today's date highlighted.
func (n *Navigator) Grid() []Cell {
	y, m, _ := n.anchor.Date()
	return MonthGrid(y, m, n.now())
}

// Label renders the anchor month, e.g. "June 2024".
func (n *Navigator) Label() string {
	return n.anchor.Format(LabelLayout)
}
