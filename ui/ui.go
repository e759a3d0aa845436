/*
负责窗口、键盘输入和画面刷新的模块
*/

package ui

import (
	"time"

	"fyne.io/fyne"
	"fyne.io/fyne/app"
	"fyne.io/fyne/driver/desktop"

	"fcore/nes"
)

func keyParse(ev *fyne.KeyEvent) int {
	index := -1
	switch ev.Name {
	// A
	case "J":
		index = nes.ButtonA
		// B
	case "K":
		index = nes.ButtonB
		// Select
	case "U":
		index = nes.ButtonSelect
		// Start
	case "I":
		index = nes.ButtonStart
	case "W":
		index = nes.ButtonUp
	case "S":
		index = nes.ButtonDown
	case "A":
		index = nes.ButtonLeft
	case "D":
		index = nes.ButtonRight
	}
	return index
}

// OpenWindow 打开主窗口并启动模拟循环。
// 窗口关闭后先停模拟线程并等它退出, 再释放声音设备。
func OpenWindow(console *nes.Console) {

	myApp := app.New()
	w := myApp.NewWindow("TinyFC")
	view := newScreenView(console)
	w.SetContent(view)
	w.Resize(fyne.NewSize(nes.FrameWidth*viewScale, nes.FrameHeight*viewScale))
	myCanvas := w.Canvas()

	audio := NewAudio(console)
	if err := audio.Start(); err != nil {
		// 没有可用声卡时无声继续跑
		nes.Logger("audio unavailable: %v\n", err)
		audio = nil
	}

	if deskCanvas, ok := myCanvas.(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			switch ev.Name {
			// 插拔光枪
			case "Z":
				console.SetZapper(!console.ZapperConnected())
			case "P":
				console.SetPaused(!console.Paused())
			case "R":
				console.Reset()
			default:
				if index := keyParse(ev); index >= 0 {
					console.Buttons.Press(uint(index))
				}
			}
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if index := keyParse(ev); index >= 0 {
				console.Buttons.Release(uint(index))
			}
		})
	}

	go console.Run()
	go refreshLoop(console, view)

	w.ShowAndRun()

	console.Stop()
	console.Wait()
	if audio != nil {
		audio.Stop()
	}
}

// 接近60fps地从FrameChannel取完整帧刷新画面。
// 取到的永远是发布过的整帧, 跟不上时跳帧而不是撕裂。
func refreshLoop(console *nes.Console, view *screenView) {
	for console.Running() {
		time.Sleep(time.Millisecond * 16)
		view.update(console.Frames.Acquire())
	}
}
