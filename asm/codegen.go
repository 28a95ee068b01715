package asm

import (
	"errors"
	"fmt"

	"c8/chip8"
	"c8/diag"
)

// programStart is the address the first emitted byte lands on.
const programStart = 0x200

// AliasAlreadyDefinedError reports a duplicate alias name.
type AliasAlreadyDefinedError string

func (e AliasAlreadyDefinedError) Error() string {
	return fmt.Sprintf("The alias %q was already defined", string(e))
}

// LabelAlreadyDefinedError reports a duplicate label name.
type LabelAlreadyDefinedError string

func (e LabelAlreadyDefinedError) Error() string {
	return fmt.Sprintf("The label %q was already defined", string(e))
}

// AliasNotDefinedError reports a use of an undefined alias.
type AliasNotDefinedError string

func (e AliasNotDefinedError) Error() string {
	return fmt.Sprintf("The alias %q is not defined", string(e))
}

// AliasShouldBeRegisterError reports a raw data alias used where a register
// was needed.
type AliasShouldBeRegisterError string

func (e AliasShouldBeRegisterError) Error() string {
	return fmt.Sprintf("The alias %q should be a register but isn't", string(e))
}

// AliasShouldBeNumberError reports a register alias used where a number was
// needed.
type AliasShouldBeNumberError string

func (e AliasShouldBeNumberError) Error() string {
	return fmt.Sprintf("The alias %q should be a raw number but isn't", string(e))
}

// AliasedLiteralTooBigError reports an alias that resolved to a number too
// wide for its argument position.
type AliasedLiteralTooBigError struct {
	Name  string
	Value uint16
	Max   uint16
}

func (e AliasedLiteralTooBigError) Error() string {
	return fmt.Sprintf("Alias %q resolved to a number which was too large: %d should be at most %d",
		e.Name, e.Value, e.Max)
}

// ErrJmppBase is reported when the jmpp base register is not V0.
var ErrJmppBase = errors.New("The jmpp instruction only supports jumping plus V0")

// CodegenError is a code generation failure tied to the span of the
// statement that caused it.
type CodegenError struct {
	Span diag.Span
	Err  error
}

func (e *CodegenError) Error() string {
	return e.Err.Error()
}

func (e *CodegenError) Unwrap() error {
	return e.Err
}

// codegen holds the shared alias/label namespace built by the first pass.
type codegen struct {
	aliases map[string]AliasableThing
}

// Codegen lowers a statement list to ROM bytes in two passes: the first
// computes emission offsets and fills the alias/label namespace, the second
// resolves operands and encodes. It stops at the first error, since every
// later offset would be meaningless. Include directives were already warned
// about and emit nothing.
func Codegen(statements []Stmt, d *diag.Diagnostics) ([]byte, *CodegenError) {
	g := &codegen{aliases: make(map[string]AliasableThing)}

	offset := uint16(programStart)

	for i := range statements {
		stmt := &statements[i]

		switch stmt.Kind {
		case StmtAliasDefinition:
			if _, exists := g.aliases[stmt.Name]; exists {
				return nil, &CodegenError{Span: stmt.Span, Err: AliasAlreadyDefinedError(stmt.Name)}
			}
			g.aliases[stmt.Name] = stmt.Alias
		case StmtRawData:
			offset += uint16(len(stmt.Data))
		case StmtLabel:
			if _, exists := g.aliases[stmt.Name]; exists {
				return nil, &CodegenError{Span: stmt.Span, Err: LabelAlreadyDefinedError(stmt.Name)}
			}
			g.aliases[stmt.Name] = AliasableThing{Kind: AliasRawData, Data: offset}
		case StmtInstruction:
			offset += 2
		case StmtInclude:
			d.Warning(stmt.Span, "Including other files is currently not implemented, so this will be ignored")
		}
	}

	blob := make([]byte, 0, int(offset)-programStart)

	for i := range statements {
		stmt := &statements[i]

		switch stmt.Kind {
		case StmtRawData:
			blob = append(blob, stmt.Data...)
		case StmtInstruction:
			inst, cerr := g.lower(stmt.Instr, stmt.Span)
			if cerr != nil {
				return nil, cerr
			}

			pair, err := chip8.Encode(inst)
			if err != nil {
				return nil, &CodegenError{Span: stmt.Span, Err: fmt.Errorf("failed to encode instruction: %w", err)}
			}

			blob = append(blob, pair[0], pair[1])
		}
	}

	return blob, nil
}

// lower resolves the operands of a pseudo-instruction and produces the
// concrete instruction to encode.
func (g *codegen) lower(pi PseudoInstruction, span diag.Span) (chip8.Instruction, *CodegenError) {
	switch pi.Op {
	case PseudoNop:
		return chip8.Instruction{Op: chip8.Nop}, nil
	case PseudoCls:
		return chip8.Instruction{Op: chip8.ClearScreen}, nil
	case PseudoRet:
		return chip8.Instruction{Op: chip8.Return}, nil
	case PseudoJmp:
		addr, err := g.resolveAddr(pi.Args[0], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		return chip8.Instruction{Op: chip8.Jump, Addr: addr}, nil
	case PseudoJmpPlus:
		reg, err := g.resolveReg(pi.Args[0], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		if reg != 0 {
			return chip8.Instruction{}, &CodegenError{Span: span, Err: ErrJmppBase}
		}

		addr, err := g.resolveAddr(pi.Args[1], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		return chip8.Instruction{Op: chip8.JumpPlusV0, Addr: addr}, nil
	case PseudoCall:
		addr, err := g.resolveAddr(pi.Args[0], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		return chip8.Instruction{Op: chip8.Call, Addr: addr}, nil
	case PseudoSe:
		return g.lowerRegOperand(chip8.SkipIfEqual, pi, span)
	case PseudoSne:
		return g.lowerRegOperand(chip8.SkipIfNotEqual, pi, span)
	case PseudoLd:
		return g.lowerRegOperand(chip8.LoadRegister, pi, span)
	case PseudoLdIndex:
		addr, err := g.resolveAddr(pi.Args[0], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		return chip8.Instruction{Op: chip8.LoadMemoryRegister, Addr: addr}, nil
	case PseudoLdFromK:
		return g.lowerOneReg(chip8.WaitForKeyPress, pi, span)
	case PseudoLdFromDt:
		return g.lowerOneReg(chip8.LoadFromDelayTimer, pi, span)
	case PseudoAdd:
		// add dispatches on the resolved operand: register form carries,
		// literal form doesn't.
		r1, err := g.resolveReg(pi.Args[0], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		op, err := g.resolveRegOrByte(pi.Args[1], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		if op.Kind == chip8.OperandRegister {
			return chip8.Instruction{Op: chip8.AddWithCarry, X: r1, Y: op.Val}, nil
		}

		return chip8.Instruction{Op: chip8.AddNoCarry, X: r1, B: op.Val}, nil
	case PseudoAddIndex:
		return g.lowerOneReg(chip8.AddToMemoryRegister, pi, span)
	case PseudoOr:
		return g.lowerTwoReg(chip8.Or, pi, span)
	case PseudoAnd:
		return g.lowerTwoReg(chip8.And, pi, span)
	case PseudoXor:
		return g.lowerTwoReg(chip8.Xor, pi, span)
	case PseudoSub:
		return g.lowerTwoReg(chip8.Sub, pi, span)
	case PseudoSubn:
		return g.lowerTwoReg(chip8.SubN, pi, span)
	case PseudoShr:
		return g.lowerOneReg(chip8.ShiftRight, pi, span)
	case PseudoShl:
		return g.lowerOneReg(chip8.ShiftLeft, pi, span)
	case PseudoRnd:
		reg, err := g.resolveReg(pi.Args[0], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		mask, err := g.resolveNum(pi.Args[1], span, 0xFF)
		if err != nil {
			return chip8.Instruction{}, err
		}

		return chip8.Instruction{Op: chip8.LoadRandomWithMask, X: reg, B: mask}, nil
	case PseudoDrw:
		r1, err := g.resolveReg(pi.Args[0], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		r2, err := g.resolveReg(pi.Args[1], span)
		if err != nil {
			return chip8.Instruction{}, err
		}

		nibble, err := g.resolveNum(pi.Args[2], span, 0xF)
		if err != nil {
			return chip8.Instruction{}, err
		}

		return chip8.Instruction{Op: chip8.Draw, X: r1, Y: r2, N: nibble}, nil
	case PseudoSkp:
		return g.lowerOneReg(chip8.SkipIfKeyPressed, pi, span)
	case PseudoSknp:
		return g.lowerOneReg(chip8.SkipIfKeyNotPressed, pi, span)
	case PseudoDelay:
		return g.lowerOneReg(chip8.LoadIntoDelayTimer, pi, span)
	case PseudoSound:
		return g.lowerOneReg(chip8.LoadIntoSoundTimer, pi, span)
	case PseudoFont:
		return g.lowerOneReg(chip8.LoadDigitAddress, pi, span)
	case PseudoBcd:
		return g.lowerOneReg(chip8.StoreBcdInMemory, pi, span)
	case PseudoStor:
		return g.lowerOneReg(chip8.StoreRegistersInMemory, pi, span)
	case PseudoRstr:
		return g.lowerOneReg(chip8.ReadRegistersFromMemory, pi, span)
	}

	return chip8.Instruction{}, &CodegenError{Span: span, Err: fmt.Errorf("unknown pseudo instruction %d", pi.Op)}
}

// lowerOneReg lowers the single-register instruction forms.
func (g *codegen) lowerOneReg(op chip8.Opcode, pi PseudoInstruction, span diag.Span) (chip8.Instruction, *CodegenError) {
	reg, err := g.resolveReg(pi.Args[0], span)
	if err != nil {
		return chip8.Instruction{}, err
	}

	return chip8.Instruction{Op: op, X: reg}, nil
}

// lowerTwoReg lowers the register-register instruction forms.
func (g *codegen) lowerTwoReg(op chip8.Opcode, pi PseudoInstruction, span diag.Span) (chip8.Instruction, *CodegenError) {
	r1, err := g.resolveReg(pi.Args[0], span)
	if err != nil {
		return chip8.Instruction{}, err
	}

	r2, err := g.resolveReg(pi.Args[1], span)
	if err != nil {
		return chip8.Instruction{}, err
	}

	return chip8.Instruction{Op: op, X: r1, Y: r2}, nil
}

// lowerRegOperand lowers the se/sne/ld forms whose second operand picks
// between the register and immediate encodings.
func (g *codegen) lowerRegOperand(op chip8.Opcode, pi PseudoInstruction, span diag.Span) (chip8.Instruction, *CodegenError) {
	r1, err := g.resolveReg(pi.Args[0], span)
	if err != nil {
		return chip8.Instruction{}, err
	}

	operand, err := g.resolveRegOrByte(pi.Args[1], span)
	if err != nil {
		return chip8.Instruction{}, err
	}

	return chip8.Instruction{Op: op, X: r1, Operand: operand}, nil
}

// resolveReg resolves a register argument. An alias must be bound to a
// register.
func (g *codegen) resolveReg(arg Arg, span diag.Span) (uint8, *CodegenError) {
	if arg.Kind != ArgAlias {
		return arg.Reg, nil
	}

	thing, ok := g.aliases[arg.Name]
	if !ok {
		return 0, &CodegenError{Span: span, Err: AliasNotDefinedError(arg.Name)}
	}

	if thing.Kind != AliasRegister {
		return 0, &CodegenError{Span: span, Err: AliasShouldBeRegisterError(arg.Name)}
	}

	return thing.Reg, nil
}

// resolveAddr resolves a 12-bit address argument. An alias must be bound to
// raw data; the width is left to the encoder.
func (g *codegen) resolveAddr(arg Arg, span diag.Span) (uint16, *CodegenError) {
	if arg.Kind != ArgAlias {
		return arg.Num, nil
	}

	thing, ok := g.aliases[arg.Name]
	if !ok {
		return 0, &CodegenError{Span: span, Err: AliasNotDefinedError(arg.Name)}
	}

	if thing.Kind != AliasRawData {
		return 0, &CodegenError{Span: span, Err: AliasShouldBeNumberError(arg.Name)}
	}

	return thing.Data, nil
}

// resolveNum resolves a byte or nibble argument, bounding aliased values at
// max.
func (g *codegen) resolveNum(arg Arg, span diag.Span, max uint16) (uint8, *CodegenError) {
	if arg.Kind != ArgAlias {
		return uint8(arg.Num), nil
	}

	thing, ok := g.aliases[arg.Name]
	if !ok {
		return 0, &CodegenError{Span: span, Err: AliasNotDefinedError(arg.Name)}
	}

	if thing.Kind != AliasRawData {
		return 0, &CodegenError{Span: span, Err: AliasShouldBeNumberError(arg.Name)}
	}

	if thing.Data > max {
		return 0, &CodegenError{Span: span, Err: AliasedLiteralTooBigError{Name: arg.Name, Value: thing.Data, Max: max}}
	}

	return uint8(thing.Data), nil
}

// resolveRegOrByte resolves an operand that takes the register form when
// the alias is bound to a register and the literal form otherwise.
func (g *codegen) resolveRegOrByte(arg Arg, span diag.Span) (chip8.Operand, *CodegenError) {
	switch arg.Kind {
	case ArgRegister:
		return chip8.Register(arg.Reg), nil
	case ArgNumber:
		return chip8.Literal(uint8(arg.Num)), nil
	}

	thing, ok := g.aliases[arg.Name]
	if !ok {
		return chip8.Operand{}, &CodegenError{Span: span, Err: AliasNotDefinedError(arg.Name)}
	}

	if thing.Kind == AliasRegister {
		return chip8.Register(thing.Reg), nil
	}

	if thing.Data > 0xFF {
		return chip8.Operand{}, &CodegenError{Span: span, Err: AliasedLiteralTooBigError{Name: arg.Name, Value: thing.Data, Max: 0xFF}}
	}

	return chip8.Literal(uint8(thing.Data)), nil
}
