package ui

import (
	"github.com/gordonklaus/portaudio"

	"fcore/nes"
)

/*
声音输出: portaudio按自己的节奏回调拉取采样。
回调跑在实时线程上, 里面只做一次环形缓冲的拷贝,
不加锁不阻塞, 数据不足时AudioRing直接给静音。
*/

// 每次回调的采样数, 44100Hz下约23ms一次
const framesPerBuffer = 1024

type Audio struct {
	stream  *portaudio.Stream
	console *nes.Console
}

func NewAudio(console *nes.Console) *Audio {
	return &Audio{console: console}
}

func (audio *Audio) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(nes.SampleRate), framesPerBuffer, audio.Callback)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	audio.stream = stream
	return stream.Start()
}

func (audio *Audio) Stop() error {
	if audio.stream == nil {
		return nil
	}
	err := audio.stream.Close()
	portaudio.Terminate()
	return err
}

func (audio *Audio) Callback(out []int16) {
	audio.console.Samples.Pull(out)
}
