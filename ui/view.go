package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne"
	"fyne.io/fyne/canvas"
	"fyne.io/fyne/driver/desktop"
	"fyne.io/fyne/theme"
	"fyne.io/fyne/widget"

	"fcore/nes"
)

/*
游戏画面控件: 显示FrameChannel里最近的一帧,
并把画面内的指针按下/抬起换算成帧坐标喂给光枪。
*/

// 画面放大倍数
const viewScale = 2

type screenView struct {
	widget.BaseWidget
	console *nes.Console
	img     *canvas.Image
}

func newScreenView(console *nes.Console) *screenView {
	view := &screenView{console: console}
	blank := image.NewRGBA(image.Rect(0, 0, nes.FrameWidth*viewScale, nes.FrameHeight*viewScale))
	view.img = canvas.NewImageFromImage(blank)
	view.ExtendBaseWidget(view)
	return view
}

func (view *screenView) CreateRenderer() fyne.WidgetRenderer {
	return &screenRenderer{view: view}
}

// update 换上一张新帧并触发重绘, 由刷新循环调用
func (view *screenView) update(frame *image.RGBA) {
	view.img.Image = Scale(frame, viewScale)
	canvas.Refresh(view.img)
}

// MouseDown 光枪瞄准: 控件内坐标映射回256x240的帧空间
func (view *screenView) MouseDown(ev *desktop.MouseEvent) {
	if !view.console.ZapperConnected() {
		return
	}
	x, y := view.frameCoordinates(ev.Position)
	view.console.AimZapper(x, y)
}

// MouseUp 抬起即开火, 同时完成感光判定
func (view *screenView) MouseUp(ev *desktop.MouseEvent) {
	if !view.console.ZapperConnected() {
		return
	}
	view.console.FireZapper()
}

func (view *screenView) frameCoordinates(pos fyne.Position) (int, int) {
	size := view.Size()
	x := pos.X * nes.FrameWidth / size.Width
	y := pos.Y * nes.FrameHeight / size.Height
	return clamp(x, nes.FrameWidth-1), clamp(y, nes.FrameHeight-1)
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

type screenRenderer struct {
	view *screenView
}

func (r *screenRenderer) Layout(size fyne.Size) {
	r.view.img.Resize(size)
}

func (r *screenRenderer) MinSize() fyne.Size {
	return fyne.NewSize(nes.FrameWidth*viewScale, nes.FrameHeight*viewScale)
}

func (r *screenRenderer) Refresh() {
	canvas.Refresh(r.view.img)
}

func (r *screenRenderer) BackgroundColor() color.Color {
	return theme.BackgroundColor()
}

func (r *screenRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.img}
}

func (r *screenRenderer) Destroy() {}
