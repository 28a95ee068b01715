package asm

import "c8/diag"

// AliasKind discriminates what an alias name is bound to.
type AliasKind uint8

const (
	// AliasRawData binds the name to a 16-bit constant (or a label
	// offset, which shares the namespace).
	AliasRawData AliasKind = iota

	// AliasRegister binds the name to one of V0..VF.
	AliasRegister
)

// AliasableThing is the binding of an alias or label name.
type AliasableThing struct {
	Kind AliasKind

	// Data is the constant for AliasRawData bindings.
	Data uint16

	// Reg is the register index for AliasRegister bindings.
	Reg uint8
}

// ArgKind discriminates pseudo-instruction arguments.
type ArgKind uint8

const (
	// ArgNone marks an unused argument slot.
	ArgNone ArgKind = iota

	// ArgAlias is an identifier still to be resolved by codegen.
	ArgAlias

	// ArgRegister is a concrete general register.
	ArgRegister

	// ArgNumber is a concrete numeric literal, already checked against
	// the width its position allows.
	ArgNumber
)

// Arg is one pseudo-instruction operand: an unresolved alias name, a
// register, or a number.
type Arg struct {
	Kind ArgKind

	// Name is the alias name for ArgAlias.
	Name string

	// Reg is the register index for ArgRegister.
	Reg uint8

	// Num is the value for ArgNumber.
	Num uint16
}

// aliasArg returns an unresolved alias argument.
func aliasArg(name string) Arg {
	return Arg{Kind: ArgAlias, Name: name}
}

// regArg returns a concrete register argument.
func regArg(reg uint8) Arg {
	return Arg{Kind: ArgRegister, Reg: reg}
}

// numArg returns a concrete numeric argument.
func numArg(num uint16) Arg {
	return Arg{Kind: ArgNumber, Num: num}
}

// PseudoOp identifies the form of a pseudo-instruction. The forms mirror
// the source mnemonics, with ld and add split by their special-register
// variants.
type PseudoOp uint8

const (
	PseudoNop PseudoOp = iota
	PseudoCls
	PseudoRet
	PseudoJmp      // addr
	PseudoJmpPlus  // reg, addr
	PseudoCall     // addr
	PseudoSe       // reg, reg-or-byte
	PseudoSne      // reg, reg-or-byte
	PseudoLd       // reg, reg-or-byte
	PseudoLdIndex  // addr
	PseudoLdFromK  // reg
	PseudoLdFromDt // reg
	PseudoAdd      // reg, reg-or-byte
	PseudoAddIndex // reg
	PseudoOr       // reg, reg
	PseudoAnd      // reg, reg
	PseudoXor      // reg, reg
	PseudoSub      // reg, reg
	PseudoSubn     // reg, reg
	PseudoShr      // reg
	PseudoShl      // reg
	PseudoRnd      // reg, byte
	PseudoDrw      // reg, reg, nibble
	PseudoSkp      // reg
	PseudoSknp     // reg
	PseudoDelay    // reg
	PseudoSound    // reg
	PseudoFont     // reg
	PseudoBcd      // reg
	PseudoStor     // reg
	PseudoRstr     // reg
)

// PseudoInstruction is an instruction whose operands may still contain
// unresolved alias names. Codegen lowers it to a chip8.Instruction.
type PseudoInstruction struct {
	Op PseudoOp

	// Args are the operands in source order; unused slots are ArgNone.
	Args [3]Arg
}

// StmtKind identifies a statement.
type StmtKind uint8

const (
	StmtAliasDefinition StmtKind = iota
	StmtRawData
	StmtLabel
	StmtInstruction
	StmtInclude
)

// Stmt is a single spanned statement of the program.
type Stmt struct {
	Kind StmtKind
	Span diag.Span

	// Name is the alias or label name, or the include filename.
	Name string

	// Alias is the binding of an alias definition.
	Alias AliasableThing

	// Data is the payload of a raw data definition.
	Data []byte

	// Instr is the pseudo-instruction of an instruction statement.
	Instr PseudoInstruction
}
