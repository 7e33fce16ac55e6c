package complete

// Popup is the host-side suggestion list with a highlighted entry. The
// index always stays within [0, len) and never wraps.
type Popup struct {
	items    []Suggestion
	selected int
}

// Set replaces the items and highlights the first one.
func (p *Popup) Set(items []Suggestion) {
	p.items = items
	p.selected = 0
}

// Hide clears the popup.
func (p *Popup) Hide() {
	p.Set(nil)
}

// Visible reports whether there is anything to show.
func (p *Popup) Visible() bool {
	return len(p.items) > 0
}

// Items returns the current suggestions.
func (p *Popup) Items() []Suggestion {
	return p.items
}

// Index returns the highlighted position.
func (p *Popup) Index() int {
	return p.selected
}

// Next moves the highlight down, stopping at the last item.
func (p *Popup) Next() {
	p.Select(p.selected + 1)
}

// Prev moves the highlight up, stopping at the first item.
func (p *Popup) Prev() {
	p.Select(p.selected - 1)
}

// Select highlights index i, clamped to the list.
func (p *Popup) Select(i int) {
	if i >= len(p.items) {
		i = len(p.items) - 1
	}
	if i < 0 {
		i = 0
	}
	p.selected = i
}

// Selected returns the highlighted suggestion.
func (p *Popup) Selected() (Suggestion, bool) {
	if len(p.items) == 0 {
		return Suggestion{}, false
	}
	return p.items[p.selected], true
}
