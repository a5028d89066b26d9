package logic

// Navigator keeps the settings cursor and the results viewport in range
type Navigator struct {
	selectedIndex  int
	rowCount       int
	viewportOffset int
	viewportHeight int
	total          int
}

// NewNavigator creates a navigator over rowCount panel rows
func NewNavigator(rowCount int) *Navigator {
	return &Navigator{rowCount: rowCount, viewportHeight: 10}
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the first visible result row
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// Move shifts the cursor by delta, stopping at either end
func (n *Navigator) Move(delta int) int {
	return n.SetSelectedIndex(n.selectedIndex + delta)
}

// SetSelectedIndex sets the selected index, clamped to the panel
func (n *Navigator) SetSelectedIndex(index int) int {
	if index >= n.rowCount {
		index = n.rowCount - 1
	}
	if index < 0 {
		index = 0
	}
	n.selectedIndex = index
	return n.selectedIndex
}

// SetViewport records how many result rows fit on screen and how many exist
func (n *Navigator) SetViewport(height, total int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.total = total
	n.clampOffset()
}

// PageDown scrolls the results one page forward
func (n *Navigator) PageDown() int {
	n.viewportOffset += n.viewportHeight
	n.clampOffset()
	return n.viewportOffset
}

// PageUp scrolls the results one page back
func (n *Navigator) PageUp() int {
	n.viewportOffset -= n.viewportHeight
	n.clampOffset()
	return n.viewportOffset
}

// ResetViewport scrolls back to the first result
func (n *Navigator) ResetViewport() {
	n.viewportOffset = 0
}

func (n *Navigator) clampOffset() {
	maxOffset := n.total - n.viewportHeight
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
