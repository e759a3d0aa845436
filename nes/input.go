package nes

import "sync/atomic"

/*
bit:	7	6	5	4	3	2	1	0
button:	Right	Left	Down	Up	Start	Select	B	A

手柄的串行读出协议:
给$4016写1(strobe高)期间, 每次写都把当前按键快照装进移位寄存器;
写0之后(strobe低), 每读一次端口移出一位。
移出时高位补1, 读满8次后寄存器收敛为全1, 之后一直读到1,
复刻真实手柄在开放总线上的表现。
每次端口读还要混入D6(悬空的总线位)。
*/

// 手柄按键, 位序就是串行读出顺序(A最先)
const (
	ButtonA = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// 每次端口读都混入的开放总线位(D6)
const openBusBits = 0x40

// ButtonState 是两个手柄的按键快照, 低8位1P, 高8位2P(目前触控没用到)。
// 输入采集方在任意线程写, 模拟线程在strobe高时读, 所以整字用原子操作,
// 不会读到改了一半的组合键。
type ButtonState struct {
	bits uint32
}

func NewButtonState() *ButtonState {
	return &ButtonState{}
}

func (s *ButtonState) Press(button uint) {
	for {
		old := atomic.LoadUint32(&s.bits)
		if atomic.CompareAndSwapUint32(&s.bits, old, old|1<<button) {
			return
		}
	}
}

func (s *ButtonState) Release(button uint) {
	for {
		old := atomic.LoadUint32(&s.bits)
		if atomic.CompareAndSwapUint32(&s.bits, old, old&^(1<<button)) {
			return
		}
	}
}

// Store 整字替换, 一次换掉全部按键
func (s *ButtonState) Store(mask uint16) {
	atomic.StoreUint32(&s.bits, uint32(mask))
}

func (s *ButtonState) Snapshot() uint16 {
	return uint16(atomic.LoadUint32(&s.bits))
}

// InputLatch 实现两个手柄口的选通/移位状态机
type InputLatch struct {
	buttons *ButtonState
	strobe  bool
	shift1  byte
	shift2  byte
}

func NewInputLatch(buttons *ButtonState) *InputLatch {
	return &InputLatch{buttons: buttons}
}

// WriteStrobe 处理对$4016的写, 低位是选通信号。
// strobe为高期间每次写都重新装载寄存器;
// loadPort2为false时(光枪接管2P口)不碰shift2。
func (l *InputLatch) WriteStrobe(value byte, loadPort2 bool) {
	l.strobe = value&1 == 1
	if l.strobe {
		snap := l.buttons.Snapshot()
		l.shift1 = byte(snap)
		if loadPort2 {
			l.shift2 = byte(snap >> 8)
		}
	}
}

func (l *InputLatch) ReadPort1() byte {
	return l.read(&l.shift1)
}

func (l *InputLatch) ReadPort2() byte {
	return l.read(&l.shift2)
}

// strobe高时读到的总是寄存器的bit0(A键的即时状态);
// strobe低时每读一次右移一位, 高位补1
func (l *InputLatch) read(reg *byte) byte {
	bit := *reg & 1
	if !l.strobe {
		*reg = *reg>>1 | 0x80
	}
	return bit | openBusBits
}

// Clear 清空两个移位寄存器。光枪插拔和软复位时调用,
// 避免残留的按键位被当成外设位读走。
func (l *InputLatch) Clear() {
	l.shift1 = 0
	l.shift2 = 0
}
