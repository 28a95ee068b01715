// Package asm implements the CHIP-8 assembler: a spanned scanner, a
// recursive descent parser and a two-pass code generator that lowers the
// parsed statements into ROM bytes through the chip8 codec.
package asm

import "c8/diag"

// TokenKind identifies a lexical token.
type TokenKind uint8

const (
	TokenColon TokenKind = iota
	TokenIdentifier
	TokenInstructionName
	TokenGeneralRegisterName
	TokenSpecialRegisterName
	TokenNumericLiteral
	TokenStringLiteral
	TokenDefine
	TokenDefineBytes
	TokenDefineWords
	TokenText
	TokenInclude
)

// Mnemonic enumerates the instruction names of the assembly language.
type Mnemonic uint8

const (
	MnemNop Mnemonic = iota
	MnemCls
	MnemRet
	MnemJmp
	MnemJmpp
	MnemCall
	MnemSe
	MnemSne
	MnemLd
	MnemAdd
	MnemOr
	MnemAnd
	MnemXor
	MnemSub
	MnemSubn
	MnemShr
	MnemShl
	MnemRnd
	MnemDrw
	MnemSkp
	MnemSknp
	MnemDelay
	MnemSound
	MnemFont
	MnemBcd
	MnemStor
	MnemRstr
)

// SpecialRegister names the non-general registers that appear in mnemonics.
type SpecialRegister uint8

const (
	// SpecialI is the memory register.
	SpecialI SpecialRegister = iota

	// SpecialDT is the delay timer.
	SpecialDT

	// SpecialK is the keyboard, only used to wait for a key press.
	SpecialK
)

// Token is a single spanned lexeme. The payload fields carry meaning
// depending on Kind.
type Token struct {
	Kind TokenKind
	Span diag.Span

	// Text is the identifier name or the string literal content.
	Text string

	// Num is the value of a numeric literal.
	Num uint16

	// Mnem is the instruction name.
	Mnem Mnemonic

	// Reg is the general register index, 0..15.
	Reg uint8

	// Special is the special register name.
	Special SpecialRegister
}

// keywords maps every reserved word of the (lowercased) assembly language
// to its token shape. Anything else scans as an identifier.
var keywords = map[string]Token{
	// instructions
	"nop":   {Kind: TokenInstructionName, Mnem: MnemNop},
	"cls":   {Kind: TokenInstructionName, Mnem: MnemCls},
	"ret":   {Kind: TokenInstructionName, Mnem: MnemRet},
	"jmp":   {Kind: TokenInstructionName, Mnem: MnemJmp},
	"jp":    {Kind: TokenInstructionName, Mnem: MnemJmp},
	"jmpp":  {Kind: TokenInstructionName, Mnem: MnemJmpp},
	"call":  {Kind: TokenInstructionName, Mnem: MnemCall},
	"se":    {Kind: TokenInstructionName, Mnem: MnemSe},
	"sne":   {Kind: TokenInstructionName, Mnem: MnemSne},
	"ld":    {Kind: TokenInstructionName, Mnem: MnemLd},
	"add":   {Kind: TokenInstructionName, Mnem: MnemAdd},
	"or":    {Kind: TokenInstructionName, Mnem: MnemOr},
	"and":   {Kind: TokenInstructionName, Mnem: MnemAnd},
	"xor":   {Kind: TokenInstructionName, Mnem: MnemXor},
	"sub":   {Kind: TokenInstructionName, Mnem: MnemSub},
	"subn":  {Kind: TokenInstructionName, Mnem: MnemSubn},
	"shr":   {Kind: TokenInstructionName, Mnem: MnemShr},
	"shl":   {Kind: TokenInstructionName, Mnem: MnemShl},
	"rnd":   {Kind: TokenInstructionName, Mnem: MnemRnd},
	"drw":   {Kind: TokenInstructionName, Mnem: MnemDrw},
	"skp":   {Kind: TokenInstructionName, Mnem: MnemSkp},
	"sknp":  {Kind: TokenInstructionName, Mnem: MnemSknp},
	"delay": {Kind: TokenInstructionName, Mnem: MnemDelay},
	"sound": {Kind: TokenInstructionName, Mnem: MnemSound},
	"font":  {Kind: TokenInstructionName, Mnem: MnemFont},
	"hex":   {Kind: TokenInstructionName, Mnem: MnemFont},
	"bcd":   {Kind: TokenInstructionName, Mnem: MnemBcd},
	"stor":  {Kind: TokenInstructionName, Mnem: MnemStor},
	"rstr":  {Kind: TokenInstructionName, Mnem: MnemRstr},

	// general registers
	"v0": {Kind: TokenGeneralRegisterName, Reg: 0x0},
	"v1": {Kind: TokenGeneralRegisterName, Reg: 0x1},
	"v2": {Kind: TokenGeneralRegisterName, Reg: 0x2},
	"v3": {Kind: TokenGeneralRegisterName, Reg: 0x3},
	"v4": {Kind: TokenGeneralRegisterName, Reg: 0x4},
	"v5": {Kind: TokenGeneralRegisterName, Reg: 0x5},
	"v6": {Kind: TokenGeneralRegisterName, Reg: 0x6},
	"v7": {Kind: TokenGeneralRegisterName, Reg: 0x7},
	"v8": {Kind: TokenGeneralRegisterName, Reg: 0x8},
	"v9": {Kind: TokenGeneralRegisterName, Reg: 0x9},
	"va": {Kind: TokenGeneralRegisterName, Reg: 0xA},
	"vb": {Kind: TokenGeneralRegisterName, Reg: 0xB},
	"vc": {Kind: TokenGeneralRegisterName, Reg: 0xC},
	"vd": {Kind: TokenGeneralRegisterName, Reg: 0xD},
	"ve": {Kind: TokenGeneralRegisterName, Reg: 0xE},
	"vf": {Kind: TokenGeneralRegisterName, Reg: 0xF},

	// special registers
	"i":  {Kind: TokenSpecialRegisterName, Special: SpecialI},
	"dt": {Kind: TokenSpecialRegisterName, Special: SpecialDT},
	"k":  {Kind: TokenSpecialRegisterName, Special: SpecialK},

	// directives
	"define":  {Kind: TokenDefine},
	"db":      {Kind: TokenDefineBytes},
	"dw":      {Kind: TokenDefineWords},
	"text":    {Kind: TokenText},
	"include": {Kind: TokenInclude},
}
