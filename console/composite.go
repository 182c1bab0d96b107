package console

// Point is a destination corner for the composite blit trigger.
type Point struct{ X, Y int32 }

// CompositeTrigger is the bounding box computed each time STORE3 writes
// to AddrCompositeMode: it reads the eight source and destination MMIO
// registers and computes the min/max of the four destination points, but
// performs no blit — kitty24 keeps that computation observable for tests
// (CPU.LastComposite) rather than actually compositing pixels.
type CompositeTrigger struct {
	SrcAddr, SrcW, SrcH, SrcStride Word
	Points                         [4]Point
	MinX, MinY, MaxX, MaxY         int32
}

// composite reads the MMIO composite registers and records the resulting
// bounding box. Called from the CPU's STORE3 handler when the write
// address equals AddrCompositeMode.
func (c *CPU) composite() (CompositeTrigger, error) {
	var t CompositeTrigger
	var err error
	read := func(addr int) Word {
		if err != nil {
			return 0
		}
		var v Word
		v, err = c.mem.ReadN(int64(addr), 3)
		return v
	}
	t.SrcAddr = read(AddrCompositeSrcAddr)
	t.SrcW = read(AddrCompositeSrcW)
	t.SrcH = read(AddrCompositeSrcH)
	t.SrcStride = read(AddrCompositeStride)
	pointAddrs := [4]int{AddrCompositeP0, AddrCompositeP1, AddrCompositeP2, AddrCompositeP3}
	for i, addr := range pointAddrs {
		v := read(addr)
		t.Points[i] = Point{X: int32(v) % int32(Width), Y: int32(v) / int32(Width)}
	}
	if err != nil {
		return CompositeTrigger{}, err
	}
	t.MinX, t.MaxX = t.Points[0].X, t.Points[0].X
	t.MinY, t.MaxY = t.Points[0].Y, t.Points[0].Y
	for _, p := range t.Points[1:] {
		if p.X < t.MinX {
			t.MinX = p.X
		}
		if p.X > t.MaxX {
			t.MaxX = p.X
		}
		if p.Y < t.MinY {
			t.MinY = p.Y
		}
		if p.Y > t.MaxY {
			t.MaxY = p.Y
		}
	}
	c.lastComposite = t
	return t, nil
}
