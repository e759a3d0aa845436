package nes

import (
	"image"
	"sync"
)

/*
FrameChannel 是模拟线程到渲染线程的单槽帧交接。
槽里永远是一张完整的帧: 发布方整帧拷入, 获取方整帧拷出,
临界区只有一次内存拷贝, 不会把模拟工作圈进锁里。
渲染方跟不上时会跳帧, 但永远看不到写了一半的画面。
*/

type FrameChannel struct {
	mu   sync.Mutex
	slot *image.RGBA
}

func NewFrameChannel() *FrameChannel {
	// 初始是全零的黑帧
	return &FrameChannel{
		slot: image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight)),
	}
}

// Publish 发布一帧, 模拟线程每帧调用一次
func (f *FrameChannel) Publish(frame *image.RGBA) {
	if frame == nil {
		return
	}
	f.mu.Lock()
	copy(f.slot.Pix, frame.Pix)
	f.mu.Unlock()
}

// Acquire 取最近发布的完整帧。返回的是副本, 调用方可以一直持有,
// 不会引用到槽内部的缓冲。
func (f *FrameChannel) Acquire() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	f.mu.Lock()
	copy(out.Pix, f.slot.Pix)
	f.mu.Unlock()
	return out
}
