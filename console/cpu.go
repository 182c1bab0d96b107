package console

// CPU ties the register banks to memory and runs the fetch-decode-execute
// cycle. Note the STORE family's address register is field A, the
// reverse of LOAD's field-B-as-base convention.
type CPU struct {
	banks         *Banks
	mem           *Memory
	lastComposite CompositeTrigger
}

// NewCPU returns a CPU over the given banks and memory.
func NewCPU(banks *Banks, mem *Memory) *CPU {
	return &CPU{banks: banks, mem: mem}
}

// Banks exposes the register/interrupt state, used by tests and the debug
// stepper to inspect registers.
func (c *CPU) Banks() *Banks { return c.banks }

// Memory exposes RAM, used by the debug stepper to fetch the instruction
// at pc.
func (c *CPU) Memory() *Memory { return c.mem }

// LastComposite returns the bounding box computed by the most recent
// composite trigger, or the zero CompositeTrigger if STORE3 has never
// written to AddrCompositeMode. Exposed as a test hook since kitty24
// does not actually blit pixels on a trigger.
func (c *CPU) LastComposite() CompositeTrigger { return c.lastComposite }

// Step runs exactly one fetch-decode-execute cycle.
func (c *CPU) Step() error {
	pc := c.banks.Get(RegProgramCounter)
	word, err := c.mem.FetchInstruction(pc)
	if err != nil {
		return err
	}
	if err := c.banks.Set(RegProgramCounter, pc+3); err != nil {
		return err
	}
	if word&ConditionBit != 0 && !c.banks.Condition() {
		return nil
	}
	op := decodeOp(word)
	a := field(word, fieldAShift, fieldWidth)
	switch op.Class() {
	case ClassL:
		return c.execL(op, a, word)
	case ClassI:
		return c.execI(op, a, word)
	default:
		return c.execR(op, a, word)
	}
}

func (c *CPU) execL(op Op, a, word Word) error {
	u := field(word, fieldCShift, immWidthL)
	switch op {
	case OpLet:
		return c.banks.Set(a, u)
	case OpLethi:
		low := c.banks.Get(a) & 0x000FFF
		return c.banks.Set(a, low|(u<<12))
	}
	return nil
}

func sx(u Word) int32 { return signExtend(u, fieldWidth) }

func (c *CPU) execI(op Op, a, word Word) error {
	b := field(word, fieldBShift, fieldWidth)
	u := field(word, fieldCShift, fieldWidth)
	s := c.banks.Get(b)

	switch op {
	case OpShri:
		return c.banks.Set(a, s>>uint(u))
	case OpShli:
		return c.banks.Set(a, masked(s<<uint(u)))
	case OpSlessi:
		res := Word(0)
		if signExtend(s, Bits) < int32(u) {
			res = 1
		}
		c.banks.SetCondition(s == u)
		return c.banks.Set(a, res)
	case OpLessi:
		res := Word(0)
		if s < u {
			res = 1
		}
		c.banks.SetCondition(s == u)
		return c.banks.Set(a, res)
	case OpOri:
		res := masked(s | u)
		c.banks.SetCondition(res == 0)
		return c.banks.Set(a, res)
	case OpNori:
		res := masked(^(s | u))
		c.banks.SetCondition(res == 0)
		return c.banks.Set(a, res)
	case OpAndi:
		res := masked(s & u)
		c.banks.SetCondition(res == 0)
		return c.banks.Set(a, res)
	case OpXori:
		res := masked(s ^ u)
		c.banks.SetCondition(res == 0)
		return c.banks.Set(a, res)
	case OpAddi:
		sum := s + u
		c.banks.SetCondition(sum > Mask)
		return c.banks.Set(a, masked(sum))
	case OpSubi:
		c.banks.SetCondition(s < u)
		return c.banks.Set(a, masked(s-u))
	case OpMuli:
		product := uint64(s) * uint64(u)
		c.banks.SetCondition(product > uint64(Mask))
		return c.banks.Set(a, Word(product)&Mask)
	case OpLoad, OpLoad2, OpLoad3:
		n := loadStoreWidth(op, true)
		addr := int64(s) + int64(sx(u))
		v, err := c.mem.ReadN(addr, n)
		if err != nil {
			return err
		}
		return c.banks.Set(a, v)
	case OpStore, OpStore2, OpStore3:
		n := loadStoreWidth(op, false)
		base := c.banks.Get(a)
		addr := int64(base) + int64(sx(u))
		if err := c.mem.WriteN(addr, n, s); err != nil {
			return err
		}
		if op == OpStore3 && addr == AddrCompositeMode {
			_, err := c.composite()
			return err
		}
		return nil
	}
	return nil
}

// loadStoreWidth maps LOAD/LOAD2/LOAD3 (or their STORE counterparts) to a
// byte width of 1, 2 or 3.
func loadStoreWidth(op Op, load bool) int {
	base := OpStore
	if load {
		base = OpLoad
	}
	return int(op-base) + 1
}

func (c *CPU) execR(op Op, a, word Word) error {
	b := field(word, fieldBShift, fieldWidth)
	cc := field(word, fieldCShift, fieldWidth)
	s := c.banks.Get(b)
	t := c.banks.Get(cc)

	switch op {
	case OpAshr:
		lowByte := int8(t & 0xFF)
		shift := int32(lowByte) % Bits
		if shift < 0 {
			shift += Bits
		}
		res := signExtend(s, Bits) >> uint(shift)
		return c.banks.Set(a, Word(res)&Mask)
	case OpRol:
		return c.banks.Set(a, rotateLeft24(s, signExtend(t, Bits)))
	case OpShr:
		return c.banks.Set(a, s>>uint(t))
	case OpShl:
		return c.banks.Set(a, masked(s<<uint(t)))
	case OpSless:
		res := Word(0)
		if signExtend(s, Bits) < signExtend(t, Bits) {
			res = 1
		}
		c.banks.SetCondition(s == t)
		return c.banks.Set(a, res)
	case OpLess:
		res := Word(0)
		if s < t {
			res = 1
		}
		c.banks.SetCondition(s == t)
		return c.banks.Set(a, res)
	case OpOr:
		res := masked(s | t)
		c.banks.SetCondition(res == 0)
		return c.banks.Set(a, res)
	case OpNor:
		res := masked(^(s | t))
		c.banks.SetCondition(res == 0)
		return c.banks.Set(a, res)
	case OpAnd:
		res := masked(s & t)
		c.banks.SetCondition(res == 0)
		return c.banks.Set(a, res)
	case OpXor:
		res := masked(s ^ t)
		c.banks.SetCondition(res == 0)
		return c.banks.Set(a, res)
	case OpAdd:
		sum := s + t
		c.banks.SetCondition(sum > Mask)
		return c.banks.Set(a, masked(sum))
	case OpSub:
		c.banks.SetCondition(s < t)
		return c.banks.Set(a, masked(s-t))
	case OpMul:
		product := uint64(s) * uint64(t)
		c.banks.SetCondition(product > uint64(Mask))
		return c.banks.Set(a, Word(product)&Mask)
	}
	return nil
}
