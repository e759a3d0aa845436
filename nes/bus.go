package nes

import "sync"

/*
总线: 把cpu发起的每一次读写路由到唯一的目标

[$0000, $2000) 2KB内部RAM, 每0x0800镜像一次
[$2000, $4000) PPU寄存器, 每8字节镜像
[$4000, $4018) APU和IO寄存器(含两个手柄口$4016/$4017)
[$4018, $4020) 未接设备, 读到固定的0x00, 写丢弃
[$4020, $10000) 卡带空间(PRG-ROM/RAM和mapper寄存器)

PPU另有一套完全独立的地址空间, 只有图样表区走卡带。
*/

type Bus struct {
	cpu  CPU
	ppu  PPU
	apu  APU
	cart Cartridge

	RAM    []byte
	Input  *InputLatch
	Zapper *Zapper
	Line   *IRQLine

	// 界面线程也会动手柄寄存器(光枪事件), 手柄口的状态要加这把小锁。
	// 只圈住寄存器位操作, 不圈模拟工作。
	inputMu sync.Mutex
}

// NewBus 总线不持有芯片的所有权, 它们的生命期由上层Console管理,
// 总线必须比芯片先销毁。
func NewBus(cpu CPU, ppu PPU, apu APU, cart Cartridge, buttons *ButtonState) *Bus {
	return &Bus{
		cpu:    cpu,
		ppu:    ppu,
		apu:    apu,
		cart:   cart,
		RAM:    make([]byte, 0x0800),
		Input:  NewInputLatch(buttons),
		Zapper: &Zapper{},
		Line:   &IRQLine{},
	}
}

func (b *Bus) CPURead(addr uint16) byte {
	switch {
	case addr < 0x2000:
		return b.RAM[addr%0x0800]
	case addr < 0x4000:
		return b.ppu.ReadRegister(0x2000 + addr%8)
	case addr == 0x4014:
		return b.ppu.ReadRegister(addr)
	case addr == 0x4016:
		b.inputMu.Lock()
		data := b.Input.ReadPort1()
		b.inputMu.Unlock()
		return data
	case addr == 0x4017:
		b.inputMu.Lock()
		var data byte
		if b.Zapper.connected {
			// 光枪接入时替代2P手柄, 读不移位
			data = b.Input.shift2 | openBusBits
		} else {
			data = b.Input.ReadPort2()
		}
		b.inputMu.Unlock()
		return data
	case addr < 0x4018:
		return b.apu.ReadRegister(addr)
	case addr < 0x4020:
		// 测试寄存器区, 没接东西
		return 0x00
	default:
		return b.cart.CPURead(addr)
	}
}

func (b *Bus) CPUWrite(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		b.RAM[addr%0x0800] = value
	case addr < 0x4000:
		b.ppu.WriteRegister(0x2000+addr%8, value)
	case addr == 0x4014:
		b.ppu.WriteRegister(addr, value)
	case addr == 0x4016:
		// 写选通时装载按键快照, 光枪接入期间不覆盖2P寄存器
		b.inputMu.Lock()
		b.Input.WriteStrobe(value, !b.Zapper.connected)
		b.inputMu.Unlock()
	case addr < 0x4018:
		b.apu.WriteRegister(addr, value)
	case addr < 0x4020:
		// 丢弃
	default:
		b.cart.CPUWrite(addr, value)
	}
}

// PPURead PPU发起的读只路由到卡带的图样表区
func (b *Bus) PPURead(addr uint16) byte {
	if addr < 0x2000 {
		return b.cart.PPURead(addr)
	}
	return 0x00
}

func (b *Bus) PPUWrite(addr uint16, value byte) {
	if addr < 0x2000 {
		b.cart.PPUWrite(addr, value)
	}
}

type cpuBusView struct {
	bus *Bus
}

func (v cpuBusView) Read(addr uint16) byte         { return v.bus.CPURead(addr) }
func (v cpuBusView) Write(addr uint16, value byte) { v.bus.CPUWrite(addr, value) }

type ppuBusView struct {
	bus *Bus
}

func (v ppuBusView) Read(addr uint16) byte         { return v.bus.PPURead(addr) }
func (v ppuBusView) Write(addr uint16, value byte) { v.bus.PPUWrite(addr, value) }

// CPUMemory 给cpu实现方用的总线视图
func (b *Bus) CPUMemory() Memory {
	return cpuBusView{b}
}

// PPUMemory 给ppu实现方用的总线视图
func (b *Bus) PPUMemory() Memory {
	return ppuBusView{b}
}

func (b *Bus) SetNMI(value bool) {
	b.cpu.SetNMI(value)
}

func (b *Bus) NewInstruction() bool {
	return b.cpu.NewInstruction()
}

func (b *Bus) AssertIRQ(src IRQSource) {
	b.Line.Assert(src)
}

func (b *Bus) AckIRQ(src IRQSource) {
	b.Line.Ack(src)
}

func (b *Bus) IRQValue() byte {
	return b.Line.Value()
}

// SoftReset 软复位只清总线侧的状态: 撤掉NMI, 清空移位寄存器
func (b *Bus) SoftReset() {
	b.cpu.SetNMI(false)
	b.inputMu.Lock()
	b.Input.Clear()
	b.Input.strobe = false
	b.inputMu.Unlock()
}

// SetZapper 插拔光枪。切换时清掉两个移位寄存器,
// 避免残留的2P按键位被当成扳机/感光位读走。
func (b *Bus) SetZapper(connected bool) {
	b.inputMu.Lock()
	b.Zapper.connected = connected
	b.Input.Clear()
	b.inputMu.Unlock()
}

// AimZapper 指针按下: 更新坐标并压下扳机。
// 坐标必须已经换算到256x240的帧空间。
func (b *Bus) AimZapper(x, y int) {
	b.inputMu.Lock()
	z := b.Zapper
	z.x, z.y = x, y
	z.trigger = true
	b.Input.shift2 = b.Input.shift2&0xE6 | zapperTriggerBit
	b.inputMu.Unlock()
}

// FireZapper 指针抬起: 松开扳机, 同时对最近完成的一帧做感光判定。
// bit3在"未感光"时为1, 和真实硬件的极性一致。
func (b *Bus) FireZapper() {
	b.inputMu.Lock()
	z := b.Zapper
	z.trigger = false
	b.Input.shift2 &^= zapperTriggerBit
	z.lightSensed = b.ppu.CheckTargetHit(z.x, z.y)
	if z.lightSensed {
		b.Input.shift2 &^= zapperLightBit
	} else {
		b.Input.shift2 |= zapperLightBit
	}
	b.inputMu.Unlock()
}

// mapper的IRQ配置从卡带侧经总线转发给PPU
func (b *Bus) SetIRQLatch(value byte) {
	b.ppu.SetIRQLatch(value)
}

func (b *Bus) SetIRQEnable(value bool) {
	b.ppu.SetIRQEnable(value)
}

func (b *Bus) SetIRQReload() {
	b.ppu.SetIRQReload()
}

func (b *Bus) SetMapper(value byte) {
	b.ppu.SetMapper(value)
}

func (b *Bus) SetMirroringMode(value byte) {
	b.ppu.SetMirroringMode(value)
}
