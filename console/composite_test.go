package console

import "testing"

func TestCompositeStoreComputesBoundingBox(t *testing.T) {
	cpu := newTestCPU(t)

	write := func(addr int, v Word) {
		if err := cpu.mem.WriteN(int64(addr), 3, v); err != nil {
			t.Fatalf("WriteN(0x%06X): %v", addr, err)
		}
	}
	write(AddrCompositeSrcAddr, 0)
	write(AddrCompositeSrcW, 8)
	write(AddrCompositeSrcH, 8)
	write(AddrCompositeStride, 8)
	write(AddrCompositeP0, 10)             // x=10, y=0
	write(AddrCompositeP1, 20)             // x=20, y=0
	write(AddrCompositeP2, Word(Width)+10) // x=10, y=1
	write(AddrCompositeP3, Word(Width)+30) // x=30, y=1

	if err := cpu.Banks().Set(1, AddrCompositeMode); err != nil {
		t.Fatal(err)
	}
	if err := cpu.Banks().Set(2, 1); err != nil {
		t.Fatal(err)
	}
	if err := cpu.execI(OpStore3, 1, word(false, OpStore3, 1, 2, 0)); err != nil {
		t.Fatal(err)
	}

	got := cpu.LastComposite()
	if got.MinX != 10 || got.MaxX != 30 || got.MinY != 0 || got.MaxY != 1 {
		t.Errorf("bounding box = (%d,%d)-(%d,%d), want (10,0)-(30,1)", got.MinX, got.MinY, got.MaxX, got.MaxY)
	}
}

func TestCompositeIgnoredWithoutModeWrite(t *testing.T) {
	cpu := newTestCPU(t)
	if got := cpu.LastComposite(); got != (CompositeTrigger{}) {
		t.Errorf("LastComposite before any trigger = %+v, want zero value", got)
	}
}
