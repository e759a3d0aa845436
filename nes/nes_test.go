package nes

import "image"

// 测试用的假芯片, 只记录总线交互

type fakeCPU struct {
	nmi    bool
	cycles int
	newIns bool
}

func (c *fakeCPU) Step() int {
	if c.cycles == 0 {
		return 1
	}
	return c.cycles
}

func (c *fakeCPU) SetNMI(value bool) {
	c.nmi = value
}

func (c *fakeCPU) NewInstruction() bool {
	return c.newIns
}

type fakePPU struct {
	regs     [8]byte
	last     uint16
	steps    int
	frame    *image.RGBA
	hit      bool
	hitX     int
	hitY     int
	hitCalls int
	irqLatch byte
	irqOn    bool
	mirror   byte
}

func newFakePPU() *fakePPU {
	return &fakePPU{
		frame: image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight)),
	}
}

func (p *fakePPU) ReadRegister(addr uint16) byte {
	p.last = addr
	return p.regs[addr%8]
}

func (p *fakePPU) WriteRegister(addr uint16, value byte) {
	p.last = addr
	p.regs[addr%8] = value
}

func (p *fakePPU) Step() {
	p.steps++
}

func (p *fakePPU) Frame() *image.RGBA {
	return p.frame
}

func (p *fakePPU) CheckTargetHit(x, y int) bool {
	p.hitCalls++
	p.hitX, p.hitY = x, y
	return p.hit
}

func (p *fakePPU) SetIRQLatch(value byte)      { p.irqLatch = value }
func (p *fakePPU) SetIRQEnable(value bool)     { p.irqOn = value }
func (p *fakePPU) SetIRQReload()               {}
func (p *fakePPU) SetMapper(value byte)        {}
func (p *fakePPU) SetMirroringMode(value byte) { p.mirror = value }

type fakeAPU struct {
	regs    map[uint16]byte
	steps   int
	samples []int16
}

func newFakeAPU() *fakeAPU {
	return &fakeAPU{regs: map[uint16]byte{}}
}

func (a *fakeAPU) ReadRegister(addr uint16) byte {
	return a.regs[addr]
}

func (a *fakeAPU) WriteRegister(addr uint16, value byte) {
	a.regs[addr] = value
}

func (a *fakeAPU) Step() {
	a.steps++
}

func (a *fakeAPU) Drain() []int16 {
	out := a.samples
	a.samples = nil
	return out
}

type fakeCart struct {
	prg [0x10000]byte
	chr [0x2000]byte
}

func (c *fakeCart) CPURead(addr uint16) byte {
	return c.prg[addr]
}

func (c *fakeCart) CPUWrite(addr uint16, value byte) {
	c.prg[addr] = value
}

func (c *fakeCart) PPURead(addr uint16) byte {
	return c.chr[addr]
}

func (c *fakeCart) PPUWrite(addr uint16, value byte) {
	c.chr[addr] = value
}

func newTestBus() (*Bus, *fakeCPU, *fakePPU, *fakeAPU, *fakeCart, *ButtonState) {
	cpu := &fakeCPU{}
	ppu := newFakePPU()
	apu := newFakeAPU()
	cart := &fakeCart{}
	buttons := NewButtonState()
	return NewBus(cpu, ppu, apu, cart, buttons), cpu, ppu, apu, cart, buttons
}

func newTestConsole() (*Console, *fakeCPU, *fakePPU, *fakeAPU, *fakeCart) {
	cpu := &fakeCPU{}
	ppu := newFakePPU()
	apu := newFakeAPU()
	cart := &fakeCart{}
	return NewConsole(cpu, ppu, apu, cart), cpu, ppu, apu, cart
}
