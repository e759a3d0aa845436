package nes

/*
光枪(Zapper)外设
接在2P口上时替代普通手柄: 读$4017得到的是bit4扳机、bit3感光位。
感光位的极性和直觉相反, 未感光时为1。
坐标由界面层换算到256x240的帧空间后再送进来。
*/

const (
	zapperLightBit   = 1 << 3
	zapperTriggerBit = 1 << 4
)

type Zapper struct {
	x, y        int
	trigger     bool
	lightSensed bool
	connected   bool
}

func (z *Zapper) Connected() bool {
	return z.connected
}

func (z *Zapper) Position() (x, y int) {
	return z.x, z.y
}

func (z *Zapper) Trigger() bool {
	return z.trigger
}

// LightSensed 最近一次开火时传感器是否见到光
func (z *Zapper) LightSensed() bool {
	return z.lightSensed
}
