package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container     *fyne.Container
	statusLabel   *widget.Label
	positionLabel *widget.Label
	pointsLabel   *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	statusLabel.Truncation = fyne.TextTruncateEllipsis
	positionLabel := widget.NewLabel("-- / --")
	pointsLabel := widget.NewLabel("0 points")

	countsContainer := container.NewHBox(
		pointsLabel,
		widget.NewSeparator(),
		positionLabel,
	)

	mainContainer := container.NewBorder(
		nil, nil,
		nil,
		countsContainer,
		statusLabel,
	)

	return &StatusBar{
		container:     mainContainer,
		statusLabel:   statusLabel,
		positionLabel: positionLabel,
		pointsLabel:   pointsLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// SetPosition shows the 1-based index of the current image.
func (sb *StatusBar) SetPosition(index, total int) {
	sb.positionLabel.SetText(fmt.Sprintf("%d / %d", index+1, total))
}

func (sb *StatusBar) SetPointCount(n int) {
	if n == 1 {
		sb.pointsLabel.SetText("1 point")
		return
	}
	sb.pointsLabel.SetText(fmt.Sprintf("%d points", n))
}
