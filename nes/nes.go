package nes

import (
	"fmt"
	"image"
)

/**
这个模块定义总线核心对外部芯片的依赖接口
cpu/ppu/apu/卡带的具体实现不在本仓库内, 由上层注入
*/

// CPU主频(NTSC)
const CPUFrequency = 1789773

// 音频输出格式: 单声道 有符号16位 44100Hz
const SampleRate = 44100

// 一帧画面的尺寸
const (
	FrameWidth  = 256
	FrameHeight = 240
)

// 每帧大约执行的CPU周期数(主频/60帧)
const CyclesPerFrame = CPUFrequency / 60

// Memory 是芯片看到的总线视图, 读写一个16位地址空间
type Memory interface {
	Write(addr uint16, value byte)
	Read(addr uint16) byte
}

// CPU 每次Step执行一条指令, 返回消耗的周期数
type CPU interface {
	Step() int
	SetNMI(value bool)
	NewInstruction() bool
}

type PPU interface {
	ReadRegister(addr uint16) byte
	WriteRegister(addr uint16, value byte)
	Step()
	// 最近渲染完成的一帧
	Frame() *image.RGBA
	// 光枪命中检测, 对最近一帧的(x, y)做亮度判定
	CheckTargetHit(x, y int) bool
	// mapper的扫描线IRQ配置(MMC3类卡带经总线下发)
	SetIRQLatch(value byte)
	SetIRQEnable(value bool)
	SetIRQReload()
	SetMapper(value byte)
	SetMirroringMode(value byte)
}

type APU interface {
	ReadRegister(addr uint16) byte
	WriteRegister(addr uint16, value byte)
	Step()
	// 取走自上次调用以来合成的全部采样
	Drain() []int16
}

// Cartridge 卡带, cpu和ppu各自有独立的地址空间
type Cartridge interface {
	CPURead(addr uint16) byte
	CPUWrite(addr uint16, value byte)
	PPURead(addr uint16) byte
	PPUWrite(addr uint16, value byte)
}

// 镜像模式, 经SetMirroringMode下发给PPU
const (
	MirrorHorizontal = 0
	MirrorVertical   = 1
	MirrorSingle0    = 2
	MirrorSingle1    = 3
	MirrorFour       = 4
)

func Logger(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}
