package tui

// Layout proportions
const (
	SidebarPercent           = 22
	GridPercentWithInspector = 45

	MinColumnWidth = 15

	// Hero banner above the panes and footer below
	HeaderHeight = 1
	FooterHeight = 1
	ChromeHeight = HeaderHeight + FooterHeight
)

// columnLayout holds calculated pane widths for the View
type columnLayout struct {
	sidebarWidth   int
	gridWidth      int
	inspectorWidth int // 0 if not shown
}

// calculateColumnLayout computes pane widths based on inspector visibility
func (m Model) calculateColumnLayout(availableWidth int) columnLayout {
	applyMin := func(width int) int {
		return max(width, MinColumnWidth)
	}

	layout := columnLayout{
		sidebarWidth: applyMin(availableWidth * SidebarPercent / 100),
	}
	if m.ShowInspector {
		layout.gridWidth = applyMin(availableWidth * GridPercentWithInspector / 100)
		layout.inspectorWidth = applyMin(availableWidth - layout.sidebarWidth - layout.gridWidth)
	} else {
		layout.gridWidth = applyMin(availableWidth - layout.sidebarWidth)
	}
	return layout
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-ChromeHeight, 3)
	layout := m.calculateColumnLayout(m.Width)

	m.Sidebar.SetSize(layout.sidebarWidth, contentHeight)
	m.Grid.SetSize(layout.gridWidth, contentHeight)
	if m.ShowInspector {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
	m.Omnibar.SetSize(m.Width, m.Height)
}
