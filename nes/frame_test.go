package nes

import (
	"bytes"
	"image"
	"testing"
)

func patternFrame() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	for i := range frame.Pix {
		frame.Pix[i] = byte(i)
	}
	return frame
}

func solidFrame(value byte) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	for i := range frame.Pix {
		frame.Pix[i] = value
	}
	return frame
}

func TestInitialFrameIsBlack(t *testing.T) {
	fc := NewFrameChannel()

	frame := fc.Acquire()
	for i, p := range frame.Pix {
		if p != 0 {
			t.Fatalf("pixel byte %d = %d, want 0", i, p)
		}
	}
}

func TestAcquireIsStableWithoutPublish(t *testing.T) {
	fc := NewFrameChannel()
	src := patternFrame()
	fc.Publish(src)

	a := fc.Acquire()
	b := fc.Acquire()
	if !bytes.Equal(a.Pix, src.Pix) {
		t.Fatal("acquired frame differs from published one")
	}
	// 没有新发布时, 反复获取必须逐位相同
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("two acquires without publish differ")
	}
}

func TestAcquiredFrameIsACopy(t *testing.T) {
	fc := NewFrameChannel()
	fc.Publish(solidFrame(0x11))

	a := fc.Acquire()
	fc.Publish(solidFrame(0xEE))
	if a.Pix[0] != 0x11 {
		t.Fatalf("held frame mutated by later publish: %#02x", a.Pix[0])
	}
	if got := fc.Acquire(); got.Pix[0] != 0xEE {
		t.Fatalf("latest frame = %#02x, want 0xEE", got.Pix[0])
	}
}

func TestPublishNilIsIgnored(t *testing.T) {
	fc := NewFrameChannel()
	fc.Publish(solidFrame(0x55))
	fc.Publish(nil)
	if got := fc.Acquire(); got.Pix[0] != 0x55 {
		t.Fatalf("frame = %#02x, want 0x55", got.Pix[0])
	}
}

// 发布方不停地发纯色帧, 取到的每一帧都必须是单一颜色, 否则就是撕裂
func TestNoTearingUnderConcurrentPublish(t *testing.T) {
	fc := NewFrameChannel()
	done := make(chan struct{})
	go func() {
		frames := []*image.RGBA{solidFrame(0x11), solidFrame(0xEE)}
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				fc.Publish(frames[i%2])
			}
		}
	}()
	defer close(done)

	for i := 0; i < 200; i++ {
		frame := fc.Acquire()
		first := frame.Pix[0]
		for j, p := range frame.Pix {
			if p != first {
				t.Fatalf("torn frame at byte %d: %#02x != %#02x", j, p, first)
			}
		}
	}
}
