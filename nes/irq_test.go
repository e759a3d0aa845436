package nes

import "testing"

func TestAssertAckPairs(t *testing.T) {
	sources := []IRQSource{IRQFrameCounter, IRQDMC, IRQMapperScanline}
	for _, a := range sources {
		for _, b := range sources {
			if a == b {
				continue
			}
			var line IRQLine
			line.Assert(a)
			line.Assert(b)
			line.Ack(a)
			if line.Value() != byte(b) {
				t.Fatalf("ack(%#02x) after assert(%#02x, %#02x): line = %#02x, want %#02x",
					a, a, b, line.Value(), byte(b))
			}
			if !line.Pending() {
				t.Fatal("line not pending with one source asserted")
			}
			line.Ack(b)
			if line.Pending() {
				t.Fatalf("line still pending after both acked: %#02x", line.Value())
			}
		}
	}
}

func TestAssertAckIdempotent(t *testing.T) {
	var line IRQLine

	line.Assert(IRQDMC)
	line.Assert(IRQDMC)
	if line.Value() != byte(IRQDMC) {
		t.Fatalf("line = %#02x, want %#02x", line.Value(), byte(IRQDMC))
	}

	line.Ack(IRQDMC)
	line.Ack(IRQDMC)
	if line.Value() != 0 {
		t.Fatalf("line = %#02x, want 0", line.Value())
	}
}

func TestBusIRQForwarding(t *testing.T) {
	bus, _, _, _, _, _ := newTestBus()

	bus.AssertIRQ(IRQMapperScanline)
	bus.AssertIRQ(IRQFrameCounter)
	bus.AckIRQ(IRQMapperScanline)
	if got := bus.IRQValue(); got != byte(IRQFrameCounter) {
		t.Fatalf("irq line = %#02x, want %#02x", got, byte(IRQFrameCounter))
	}
}
