package nes

import (
	"sync/atomic"
	"time"
)

/**
Console是整台机器的顶层封装: 注入的芯片 + 总线 + 两条交接通道。
模拟循环跑在自己的goroutine里, 渲染和声音各自从FrameChannel/AudioRing取数据。
构造顺序: 芯片最先, Console(连同Bus)最后;
退出时先Stop再Wait, 等模拟循环结束才能释放芯片。
*/

type Console struct {
	CPU  CPU
	PPU  PPU
	APU  APU
	Cart Cartridge

	Bus     *Bus
	Buttons *ButtonState
	Frames  *FrameChannel
	Samples *AudioRing

	running int32
	paused  int32
	budget  int64 // 每帧的时间预算(纳秒)
	frames  uint64
	done    chan struct{}
}

func NewConsole(cpu CPU, ppu PPU, apu APU, cart Cartridge) *Console {
	buttons := NewButtonState()
	console := &Console{
		CPU:     cpu,
		PPU:     ppu,
		APU:     apu,
		Cart:    cart,
		Buttons: buttons,
		Frames:  NewFrameChannel(),
		Samples: NewAudioRing(DefaultAudioCapacity),
		done:    make(chan struct{}),
	}
	console.Bus = NewBus(cpu, ppu, apu, cart, buttons)
	console.SetFrameRate(60)
	atomic.StoreInt32(&console.running, 1)
	return console
}

// Step 执行一条cpu指令。PPU的时钟是CPU三倍, APU和CPU同频。
func (console *Console) Step() int {
	cycles := console.CPU.Step()
	for i := 0; i < cycles*3; i++ {
		console.PPU.Step()
	}
	for i := 0; i < cycles; i++ {
		console.APU.Step()
	}
	return cycles
}

// RunFrame 模拟一帧, 然后发布画面、推入这一帧合成的采样
func (console *Console) RunFrame() {
	cycles := 0
	for cycles < CyclesPerFrame {
		cycles += console.Step()
	}
	console.Frames.Publish(console.PPU.Frame())
	console.Samples.Push(console.APU.Drain())
	atomic.AddUint64(&console.frames, 1)
}

// Run 按帧预算节流的模拟循环。运行标志在每圈开头检查,
// Stop之后至多一圈就退出; 落后于预算时不睡眠。
func (console *Console) Run() {
	defer close(console.done)
	for console.Running() {
		start := time.Now()
		if !console.Paused() {
			console.RunFrame()
		}
		budget := time.Duration(atomic.LoadInt64(&console.budget))
		remain := budget - time.Since(start)
		if remain > time.Millisecond {
			time.Sleep(remain - time.Millisecond)
		}
	}
}

func (console *Console) Stop() {
	atomic.StoreInt32(&console.running, 0)
}

func (console *Console) Running() bool {
	return atomic.LoadInt32(&console.running) == 1
}

// Wait 等模拟循环退出, 之后才能安全释放芯片
func (console *Console) Wait() {
	<-console.done
}

func (console *Console) SetPaused(paused bool) {
	if paused {
		atomic.StoreInt32(&console.paused, 1)
	} else {
		atomic.StoreInt32(&console.paused, 0)
	}
}

func (console *Console) Paused() bool {
	return atomic.LoadInt32(&console.paused) == 1
}

// SetFrameRate 调整帧预算, 默认60fps
func (console *Console) SetFrameRate(fps float64) {
	if fps <= 0 {
		return
	}
	atomic.StoreInt64(&console.budget, int64(float64(time.Second)/fps))
}

// FrameCount 已模拟的总帧数, 界面显示fps用
func (console *Console) FrameCount() uint64 {
	return atomic.LoadUint64(&console.frames)
}

// Reset 软复位
func (console *Console) Reset() {
	console.Bus.SoftReset()
}

// 光枪操作的转发, 给界面层用
func (console *Console) SetZapper(connected bool) {
	console.Bus.SetZapper(connected)
}

func (console *Console) ZapperConnected() bool {
	return console.Bus.Zapper.Connected()
}

func (console *Console) AimZapper(x, y int) {
	console.Bus.AimZapper(x, y)
}

func (console *Console) FireZapper() {
	console.Bus.FireZapper()
}
