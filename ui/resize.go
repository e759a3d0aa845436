package ui

import (
	"image"
)

// Scale 最近邻整数放大, 把一帧放大到窗口尺寸
func Scale(source *image.RGBA, factor int) *image.RGBA {

	bounds := source.Bounds()
	tw := bounds.Dx() * factor
	th := bounds.Dy() * factor

	var target *image.RGBA = image.NewRGBA(image.Rect(0, 0, tw, th))

	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			target.SetRGBA(x, y, source.RGBAAt(x/factor, y/factor))
		}
	}

	return target
}
