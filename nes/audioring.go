package nes

import "sync/atomic"

/*
AudioRing 是单生产者/单消费者的环形采样缓冲。
模拟线程每帧Push一批合成好的采样, 声卡回调按自己的节奏Pull。
两个游标各归一方推进, 用原子读写同步, 双方都永不阻塞:
  - 采样不足时Pull整段填静音且不消费(宁可无声也不能卡实时线程)
  - 写满时Push丢弃最新的采样并记一次诊断
*/

const DefaultAudioCapacity = 8192

type AudioRing struct {
	buf     []int16
	mask    uint32
	wpos    uint32 // 只有生产方推进
	rpos    uint32 // 只有消费方推进
	dropped uint64 // 因写满被丢掉的采样数
}

// NewAudioRing 容量向上取到2的幂, 游标运算才能用掩码回绕
func NewAudioRing(capacity int) *AudioRing {
	if capacity <= 0 {
		capacity = DefaultAudioCapacity
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &AudioRing{
		buf:  make([]int16, size),
		mask: uint32(size - 1),
	}
}

func (r *AudioRing) Capacity() int {
	return len(r.buf)
}

// Available 当前可供消费的采样数
func (r *AudioRing) Available() int {
	w := atomic.LoadUint32(&r.wpos)
	rd := atomic.LoadUint32(&r.rpos)
	return int(w - rd)
}

func (r *AudioRing) Dropped() uint64 {
	return atomic.LoadUint64(&r.dropped)
}

// Push 写入采样并返回实际写入的数量, 只能由生产方(模拟线程)调用。
// 空间不够时丢最新: 游标各归一方写, 生产方不能替消费方挪读游标。
func (r *AudioRing) Push(samples []int16) int {
	w := atomic.LoadUint32(&r.wpos)
	rd := atomic.LoadUint32(&r.rpos)
	space := len(r.buf) - int(w-rd)
	n := len(samples)
	if n > space {
		atomic.AddUint64(&r.dropped, uint64(n-space))
		Logger("audio ring full, drop %d samples\n", n-space)
		n = space
	}
	idx := int(w & r.mask)
	first := len(r.buf) - idx
	if first > n {
		first = n
	}
	copy(r.buf[idx:], samples[:first])
	copy(r.buf, samples[first:n])
	atomic.StoreUint32(&r.wpos, w+uint32(n))
	return n
}

// Pull 取出正好len(out)个采样, 只能由消费方(声卡回调)调用。
// 可用数据不足时整段填0且不消费任何数据, 不加锁不阻塞。
func (r *AudioRing) Pull(out []int16) {
	w := atomic.LoadUint32(&r.wpos)
	rd := atomic.LoadUint32(&r.rpos)
	n := len(out)
	if int(w-rd) < n {
		for i := range out {
			out[i] = 0
		}
		return
	}
	idx := int(rd & r.mask)
	first := len(r.buf) - idx
	if first > n {
		first = n
	}
	copy(out[:first], r.buf[idx:idx+first])
	copy(out[first:], r.buf[:n-first])
	atomic.StoreUint32(&r.rpos, rd+uint32(n))
}
