package nes

/*
IRQ是电平触发的: 多个中断源按位或聚合成一条线,
每个源只动自己的那一位, 断言/应答互不影响,
cpu看到非零就认为有待处理的中断。
*/

// IRQSource 中断源, 一源一位
type IRQSource byte

const (
	IRQFrameCounter   IRQSource = 1 << iota // APU帧计数器
	IRQDMC                                  // APU的DMC采样通道
	IRQMapperScanline                       // mapper扫描线计数器(MMC3)
)

type IRQLine struct {
	line byte
}

// Assert 置位。重复断言同一个源没有额外效果。
func (l *IRQLine) Assert(src IRQSource) {
	l.line |= byte(src)
}

// Ack 只清掉该源自己的位
func (l *IRQLine) Ack(src IRQSource) {
	l.line &^= byte(src)
}

func (l *IRQLine) Value() byte {
	return l.line
}

func (l *IRQLine) Pending() bool {
	return l.line != 0
}
