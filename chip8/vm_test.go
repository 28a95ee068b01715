package chip8

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

// newVM builds a machine around the given ROM bytes at the default clock.
func newVM(rom ...byte) *VM {
	return New(rom, 700)
}

// step drives one tick and fails the test on a runtime fault.
func step(t *testing.T, vm *VM, keys *Keys) *Display {
	t.Helper()

	if keys == nil {
		keys = &Keys{}
	}

	frame, err := vm.Step(keys)
	assert.NoError(t, err)

	return frame
}

// exec runs a single decoded instruction against the machine.
func exec(vm *VM, inst Instruction, keys *Keys) {
	if keys == nil {
		keys = &Keys{}
	}

	vm.execute(inst, keys)
}

func TestNewLoadsFontAndROM(t *testing.T) {
	vm := newVM(0xA1, 0x23)

	assert.Equal(t, FontSprites[:], vm.memory[FontAddressStart:FontAddressStart+80])
	assert.Equal(t, byte(0xA1), vm.memory[0x200])
	assert.Equal(t, byte(0x23), vm.memory[0x201])
	assert.Equal(t, uint16(0x200), vm.pc)
	assert.Equal(t, byte(0), vm.sp)
}

func TestSpeed(t *testing.T) {
	vm := New(nil, 700)
	hz := 700
	assert.Equal(t, time.Duration(float64(time.Second)/float64(hz)), vm.Speed())
}

func TestStepFetchesAndAdvances(t *testing.T) {
	vm := newVM(0xA1, 0x00)

	step(t, vm, nil)

	assert.Equal(t, uint16(0x202), vm.pc)
	assert.Equal(t, uint16(0x100), vm.i)
}

func TestStepRuntimeFault(t *testing.T) {
	vm := newVM(0xFF, 0xFF)

	_, err := vm.Step(&Keys{})
	assert.Equal(t, RuntimeFault{Word: 0xFFFF, Addr: 0x200}, err)
}

func TestClearScreen(t *testing.T) {
	vm := newVM()
	vm.display[5][6] = White

	exec(vm, Instruction{Op: ClearScreen}, nil)

	assert.Equal(t, Display{}, vm.display)
}

func TestCallAndReturn(t *testing.T) {
	vm := newVM()
	vm.pc = 0x202

	exec(vm, call(0x300), nil)

	assert.Equal(t, uint16(0x300), vm.pc)
	assert.Equal(t, byte(1), vm.sp)
	assert.Equal(t, uint16(0x202), vm.stack[0])

	exec(vm, Instruction{Op: Return}, nil)

	assert.Equal(t, uint16(0x202), vm.pc)
	assert.Equal(t, byte(0), vm.sp)
}

func TestJump(t *testing.T) {
	vm := newVM()

	exec(vm, jp(0x2F0), nil)
	assert.Equal(t, uint16(0x2F0), vm.pc)
}

func TestJumpPlusV0Wraps(t *testing.T) {
	vm := newVM()
	vm.v[0] = 2

	exec(vm, jpv0(0xFFF), nil)
	assert.Equal(t, uint16(0x001), vm.pc)
}

func TestSkipIfEqual(t *testing.T) {
	vm := newVM()
	vm.pc = 0x202
	vm.v[3] = 0x42

	exec(vm, se(3, Literal(0x42)), nil)
	assert.Equal(t, uint16(0x204), vm.pc)

	exec(vm, se(3, Literal(0x43)), nil)
	assert.Equal(t, uint16(0x204), vm.pc)

	vm.v[4] = 0x42
	exec(vm, se(3, Register(4)), nil)
	assert.Equal(t, uint16(0x206), vm.pc)
}

func TestSkipIfNotEqual(t *testing.T) {
	vm := newVM()
	vm.pc = 0x202
	vm.v[3] = 0x42

	exec(vm, sne(3, Literal(0x42)), nil)
	assert.Equal(t, uint16(0x202), vm.pc)

	exec(vm, sne(3, Literal(0x43)), nil)
	assert.Equal(t, uint16(0x204), vm.pc)
}

func TestLoadRegister(t *testing.T) {
	vm := newVM()

	exec(vm, ld(2, Literal(0x99)), nil)
	assert.Equal(t, byte(0x99), vm.v[2])

	exec(vm, ld(5, Register(2)), nil)
	assert.Equal(t, byte(0x99), vm.v[5])
}

func TestAddNoCarryWraps(t *testing.T) {
	vm := newVM()
	vm.v[1] = 0xFF

	exec(vm, add(1, 2), nil)

	assert.Equal(t, byte(1), vm.v[1])
	assert.Equal(t, byte(0), vm.v[0xF])
}

func TestAddWithCarry(t *testing.T) {
	vm := newVM()
	vm.v[1] = 200
	vm.v[2] = 100

	exec(vm, addc(1, 2), nil)

	assert.Equal(t, byte(44), vm.v[1])
	assert.Equal(t, byte(1), vm.v[0xF])

	vm.v[1] = 1
	vm.v[2] = 2

	exec(vm, addc(1, 2), nil)

	assert.Equal(t, byte(3), vm.v[1])
	assert.Equal(t, byte(0), vm.v[0xF])
}

func TestBitwise(t *testing.T) {
	vm := newVM()

	vm.v[1], vm.v[2] = 0xF0, 0x0F
	exec(vm, or(1, 2), nil)
	assert.Equal(t, byte(0xFF), vm.v[1])

	vm.v[1], vm.v[2] = 0xF0, 0x3C
	exec(vm, and(1, 2), nil)
	assert.Equal(t, byte(0x30), vm.v[1])

	vm.v[1], vm.v[2] = 0xFF, 0x0F
	exec(vm, xor(1, 2), nil)
	assert.Equal(t, byte(0xF0), vm.v[1])
}

// VF holds the borrow flag, opposite to the original spec wording.
func TestSubSetsBorrowFlag(t *testing.T) {
	vm := newVM()
	vm.v[1] = 5
	vm.v[2] = 10

	exec(vm, sub(1, 2), nil)

	assert.Equal(t, byte(251), vm.v[1])
	assert.Equal(t, byte(1), vm.v[0xF])

	vm.v[1] = 10
	vm.v[2] = 5

	exec(vm, sub(1, 2), nil)

	assert.Equal(t, byte(5), vm.v[1])
	assert.Equal(t, byte(0), vm.v[0xF])
}

func TestSubNSetsBorrowFlag(t *testing.T) {
	vm := newVM()
	vm.v[1] = 10
	vm.v[2] = 5

	exec(vm, subn(1, 2), nil)

	assert.Equal(t, byte(251), vm.v[1])
	assert.Equal(t, byte(1), vm.v[0xF])

	vm.v[1] = 5
	vm.v[2] = 10

	exec(vm, subn(1, 2), nil)

	assert.Equal(t, byte(5), vm.v[1])
	assert.Equal(t, byte(0), vm.v[0xF])
}

func TestShiftRight(t *testing.T) {
	vm := newVM()
	vm.v[1] = 0x05

	exec(vm, shr(1), nil)

	assert.Equal(t, byte(0x02), vm.v[1])
	assert.Equal(t, byte(1), vm.v[0xF])
}

// VF gets the raw high bit, not the bit shifted down to 1.
func TestShiftLeftStoresRawHighBit(t *testing.T) {
	vm := newVM()
	vm.v[1] = 0x81

	exec(vm, shl(1), nil)

	assert.Equal(t, byte(0x02), vm.v[1])
	assert.Equal(t, byte(0x80), vm.v[0xF])
}

func TestLoadRandomWithMask(t *testing.T) {
	vm := newVM()
	vm.randByte = func() byte { return 0xFF }

	exec(vm, rnd(4, 0x0F), nil)
	assert.Equal(t, byte(0x0F), vm.v[4])
}

func TestTimerRegisters(t *testing.T) {
	vm := newVM()
	vm.v[1] = 42

	exec(vm, ldToDt(1), nil)
	assert.Equal(t, byte(42), vm.dt)

	exec(vm, ldFromDt(2), nil)
	assert.Equal(t, byte(42), vm.v[2])

	exec(vm, ldToSt(1), nil)
	assert.Equal(t, byte(42), vm.st)
	assert.Equal(t, true, vm.BuzzerActive())
}

func TestTimersDecrementAt60Hz(t *testing.T) {
	vm := newVM(0x00, 0xE0)
	vm.dt = 2
	vm.st = 1

	// pretend the last decrement was long ago
	vm.lastTimerDecrement = time.Now().Add(-time.Second)
	step(t, vm, nil)

	assert.Equal(t, byte(1), vm.dt)
	assert.Equal(t, byte(0), vm.st)
	assert.Equal(t, false, vm.BuzzerActive())

	// a fresh timestamp means no decrement this step
	vm.pc = 0x200
	step(t, vm, nil)

	assert.Equal(t, byte(1), vm.dt)

	// timers saturate at zero
	vm.pc = 0x200
	vm.lastTimerDecrement = time.Now().Add(-time.Second)
	vm.dt = 0
	step(t, vm, nil)

	assert.Equal(t, byte(0), vm.dt)
}

func TestAddToMemoryRegisterWraps(t *testing.T) {
	vm := newVM()
	vm.i = 0xFFE
	vm.v[1] = 4

	exec(vm, addi(1), nil)
	assert.Equal(t, uint16(0x002), vm.i)
}

func TestLoadDigitAddress(t *testing.T) {
	vm := newVM()
	vm.v[0] = 0x23

	// only the low nibble selects the digit
	exec(vm, font(0), nil)
	assert.Equal(t, uint16(FontAddressStart+5*3), vm.i)
}

func TestStoreBcdInMemory(t *testing.T) {
	vm := newVM()
	vm.v[3] = 123
	vm.i = 0x300

	exec(vm, bcd(3), nil)

	assert.Equal(t, []byte{1, 2, 3}, vm.memory[0x300:0x303])
}

func TestStoreAndReadRegisters(t *testing.T) {
	vm := newVM()
	vm.i = 0x400
	vm.v[0], vm.v[1], vm.v[2] = 10, 20, 30

	exec(vm, stor(2), nil)

	assert.Equal(t, []byte{10, 20, 30}, vm.memory[0x400:0x403])
	// I itself is not modified
	assert.Equal(t, uint16(0x400), vm.i)

	vm.v = [16]byte{}
	exec(vm, rstr(2), nil)

	assert.Equal(t, byte(10), vm.v[0])
	assert.Equal(t, byte(20), vm.v[1])
	assert.Equal(t, byte(30), vm.v[2])
	assert.Equal(t, uint16(0x400), vm.i)
}

func TestSkipIfKeyPressed(t *testing.T) {
	vm := newVM()
	vm.pc = 0x202
	vm.v[1] = 5

	keys := &Keys{}
	keys[5] = true

	exec(vm, skp(1), keys)
	assert.Equal(t, uint16(0x204), vm.pc)

	exec(vm, sknp(1), keys)
	assert.Equal(t, uint16(0x204), vm.pc)

	keys[5] = false

	exec(vm, skp(1), keys)
	assert.Equal(t, uint16(0x204), vm.pc)

	exec(vm, sknp(1), keys)
	assert.Equal(t, uint16(0x206), vm.pc)
}

func TestWaitForKeyPress(t *testing.T) {
	// ld v4, k followed by cls
	vm := newVM(0xF4, 0x0A, 0x00, 0xE0)

	step(t, vm, nil)
	assert.Equal(t, uint16(0x202), vm.pc)

	// no key held: the machine idles without fetching
	step(t, vm, nil)
	step(t, vm, nil)
	assert.Equal(t, uint16(0x202), vm.pc)

	// the lowest pressed key index wins
	keys := &Keys{}
	keys[5] = true
	keys[3] = true

	step(t, vm, keys)
	assert.Equal(t, byte(3), vm.v[4])

	// execution resumes on the next step
	step(t, vm, keys)
	assert.Equal(t, uint16(0x204), vm.pc)
}

func TestDrawSprite(t *testing.T) {
	// a 2-row sprite: 0b11000000, 0b10000000
	vm := newVM()
	vm.memory[0x300] = 0xC0
	vm.memory[0x301] = 0x80
	vm.i = 0x300
	vm.v[0] = 4
	vm.v[1] = 2

	exec(vm, drw(0, 1, 2), nil)

	assert.Equal(t, White, vm.display[2][4])
	assert.Equal(t, White, vm.display[2][5])
	assert.Equal(t, White, vm.display[3][4])
	assert.Equal(t, Black, vm.display[3][5])
	assert.Equal(t, byte(0), vm.v[0xF])

	// drawing the same sprite again erases it and reports the collision
	exec(vm, drw(0, 1, 2), nil)

	assert.Equal(t, Black, vm.display[2][4])
	assert.Equal(t, Black, vm.display[3][4])
	assert.Equal(t, byte(1), vm.v[0xF])
}

func TestDrawZeroRows(t *testing.T) {
	vm := newVM()
	vm.v[0xF] = 1

	exec(vm, drw(0, 1, 0), nil)

	assert.Equal(t, Display{}, vm.display)
	assert.Equal(t, byte(0), vm.v[0xF])
}

func TestDrawWrapsInitialCoordinates(t *testing.T) {
	vm := newVM()
	vm.memory[0x300] = 0x80
	vm.i = 0x300
	vm.v[0] = 64 // mod 64 -> 0
	vm.v[1] = 33 // mod 32 -> 1

	exec(vm, drw(0, 1, 1), nil)

	assert.Equal(t, White, vm.display[1][0])
}

func TestDrawClipsRightEdge(t *testing.T) {
	vm := newVM()
	vm.memory[0x300] = 0xFF
	vm.i = 0x300
	vm.v[0] = 62
	vm.v[1] = 0

	exec(vm, drw(0, 1, 1), nil)

	assert.Equal(t, White, vm.display[0][62])
	assert.Equal(t, White, vm.display[0][63])
	// no horizontal wrap
	assert.Equal(t, Black, vm.display[0][0])
}

func TestDrawClipsBottomEdge(t *testing.T) {
	vm := newVM()
	vm.memory[0x300] = 0x80
	vm.memory[0x301] = 0x80
	vm.i = 0x300
	vm.v[0] = 0
	vm.v[1] = 31

	exec(vm, drw(0, 1, 2), nil)

	assert.Equal(t, White, vm.display[31][0])
	// no vertical wrap
	assert.Equal(t, Black, vm.display[0][0])
}

func TestStepReturnsDisplay(t *testing.T) {
	// ld v0, 1 (no drawing, but the frame is always returned)
	vm := newVM(0x60, 0x01)

	frame := step(t, vm, nil)
	assert.Equal(t, &vm.display, frame)
}
