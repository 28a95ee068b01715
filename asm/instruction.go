package asm

import "c8/diag"

// parseInstruction parses one mnemonic and its arguments into a pseudo
// instruction. Argument parsing is instruction-directed: each position
// accepts an alias identifier or the concrete token kind it expects.
func (p *parser) parseInstruction() (Stmt, *parseError) {
	instr := p.advance()
	span := instr.Span

	var pseudo PseudoInstruction

	// oneReg parses the single-register forms.
	oneReg := func(op PseudoOp) *parseError {
		reg, regSpan, err := p.parseArgGeneralRegister(span)
		if err != nil {
			return err
		}

		span = span.Union(regSpan)
		pseudo = PseudoInstruction{Op: op, Args: [3]Arg{reg}}

		return nil
	}

	// twoReg parses the register-register forms.
	twoReg := func(op PseudoOp) *parseError {
		r1, r1Span, err := p.parseArgGeneralRegister(span)
		if err != nil {
			return err
		}

		r2, r2Span, err := p.parseArgGeneralRegister(span.Union(r1Span))
		if err != nil {
			return err
		}

		span = span.Union(r1Span).Union(r2Span)
		pseudo = PseudoInstruction{Op: op, Args: [3]Arg{r1, r2}}

		return nil
	}

	// regOrByte parses a second operand that may be a register or a byte:
	// the register alternative is attempted first, and on failure the
	// parser rewinds one token and re-parses as a byte.
	regOrByte := func(prevSpan diag.Span) (Arg, diag.Span, *parseError) {
		arg, argSpan, err := p.parseArgGeneralRegister(span.Union(prevSpan))
		if err == nil {
			return arg, argSpan, nil
		}

		p.stepBack()

		return p.parseArgByte(span)
	}

	switch instr.Mnem {
	case MnemNop:
		pseudo = PseudoInstruction{Op: PseudoNop}
	case MnemCls:
		pseudo = PseudoInstruction{Op: PseudoCls}
	case MnemRet:
		pseudo = PseudoInstruction{Op: PseudoRet}
	case MnemJmp:
		addr, addrSpan, err := p.parseArgAddr(span)
		if err != nil {
			return Stmt{}, err
		}

		span = span.Union(addrSpan)
		pseudo = PseudoInstruction{Op: PseudoJmp, Args: [3]Arg{addr}}
	case MnemJmpp:
		reg, regSpan, err := p.parseArgGeneralRegister(span)
		if err != nil {
			return Stmt{}, err
		}

		addr, addrSpan, err := p.parseArgAddr(span.Union(regSpan))
		if err != nil {
			return Stmt{}, err
		}

		span = span.Union(regSpan).Union(addrSpan)
		pseudo = PseudoInstruction{Op: PseudoJmpPlus, Args: [3]Arg{reg, addr}}
	case MnemCall:
		addr, addrSpan, err := p.parseArgAddr(span)
		if err != nil {
			return Stmt{}, err
		}

		span = span.Union(addrSpan)
		pseudo = PseudoInstruction{Op: PseudoCall, Args: [3]Arg{addr}}
	case MnemSe, MnemSne:
		r1, r1Span, err := p.parseArgGeneralRegister(span)
		if err != nil {
			return Stmt{}, err
		}

		arg2, arg2Span, err := regOrByte(r1Span)
		if err != nil {
			return Stmt{}, err
		}

		op := PseudoSe
		if instr.Mnem == MnemSne {
			op = PseudoSne
		}

		span = span.Union(r1Span).Union(arg2Span)
		pseudo = PseudoInstruction{Op: op, Args: [3]Arg{r1, arg2}}
	case MnemLd:
		pi, ldSpan, err := p.parseLoad(span, regOrByte)
		if err != nil {
			return Stmt{}, err
		}

		span = span.Union(ldSpan)
		pseudo = pi
	case MnemAdd:
		if next, ok := p.peek(); ok && next.Kind == TokenSpecialRegisterName && next.Special == SpecialI {
			p.advance()

			reg, regSpan, err := p.parseArgGeneralRegister(span.Union(next.Span))
			if err != nil {
				return Stmt{}, err
			}

			span = span.Union(next.Span).Union(regSpan)
			pseudo = PseudoInstruction{Op: PseudoAddIndex, Args: [3]Arg{reg}}
			break
		}

		r1, r1Span, err := p.parseArgGeneralRegister(span)
		if err != nil {
			return Stmt{}, err
		}

		arg2, arg2Span, err := regOrByte(r1Span)
		if err != nil {
			return Stmt{}, err
		}

		span = span.Union(r1Span).Union(arg2Span)
		pseudo = PseudoInstruction{Op: PseudoAdd, Args: [3]Arg{r1, arg2}}
	case MnemOr:
		if err := twoReg(PseudoOr); err != nil {
			return Stmt{}, err
		}
	case MnemAnd:
		if err := twoReg(PseudoAnd); err != nil {
			return Stmt{}, err
		}
	case MnemXor:
		if err := twoReg(PseudoXor); err != nil {
			return Stmt{}, err
		}
	case MnemSub:
		if err := twoReg(PseudoSub); err != nil {
			return Stmt{}, err
		}
	case MnemSubn:
		if err := twoReg(PseudoSubn); err != nil {
			return Stmt{}, err
		}
	case MnemRnd:
		reg, regSpan, err := p.parseArgGeneralRegister(span)
		if err != nil {
			return Stmt{}, err
		}

		mask, maskSpan, err := p.parseArgByte(span.Union(regSpan))
		if err != nil {
			return Stmt{}, err
		}

		span = span.Union(regSpan).Union(maskSpan)
		pseudo = PseudoInstruction{Op: PseudoRnd, Args: [3]Arg{reg, mask}}
	case MnemDrw:
		r1, r1Span, err := p.parseArgGeneralRegister(span)
		if err != nil {
			return Stmt{}, err
		}

		r2, r2Span, err := p.parseArgGeneralRegister(span.Union(r1Span))
		if err != nil {
			return Stmt{}, err
		}

		nibble, nibbleSpan, err := p.parseArgNibble(span.Union(r2Span))
		if err != nil {
			return Stmt{}, err
		}

		span = span.Union(r1Span).Union(r2Span).Union(nibbleSpan)
		pseudo = PseudoInstruction{Op: PseudoDrw, Args: [3]Arg{r1, r2, nibble}}
	case MnemShr:
		if err := oneReg(PseudoShr); err != nil {
			return Stmt{}, err
		}
	case MnemShl:
		if err := oneReg(PseudoShl); err != nil {
			return Stmt{}, err
		}
	case MnemSkp:
		if err := oneReg(PseudoSkp); err != nil {
			return Stmt{}, err
		}
	case MnemSknp:
		if err := oneReg(PseudoSknp); err != nil {
			return Stmt{}, err
		}
	case MnemDelay:
		if err := oneReg(PseudoDelay); err != nil {
			return Stmt{}, err
		}
	case MnemSound:
		if err := oneReg(PseudoSound); err != nil {
			return Stmt{}, err
		}
	case MnemFont:
		if err := oneReg(PseudoFont); err != nil {
			return Stmt{}, err
		}
	case MnemBcd:
		if err := oneReg(PseudoBcd); err != nil {
			return Stmt{}, err
		}
	case MnemStor:
		if err := oneReg(PseudoStor); err != nil {
			return Stmt{}, err
		}
	case MnemRstr:
		if err := oneReg(PseudoRstr); err != nil {
			return Stmt{}, err
		}
	}

	return Stmt{Kind: StmtInstruction, Span: span, Instr: pseudo}, nil
}

// parseLoad handles the ld forms: `ld I, addr`, `ld Vx, K`, `ld Vx, DT`
// and `ld Vx, reg-or-byte`.
func (p *parser) parseLoad(
	instrSpan diag.Span,
	regOrByte func(diag.Span) (Arg, diag.Span, *parseError),
) (PseudoInstruction, diag.Span, *parseError) {
	if next, ok := p.peek(); ok && next.Kind == TokenSpecialRegisterName && next.Special == SpecialI {
		p.advance()

		addr, addrSpan, err := p.parseArgAddr(instrSpan.Union(next.Span))
		if err != nil {
			return PseudoInstruction{}, diag.Span{}, err
		}

		return PseudoInstruction{Op: PseudoLdIndex, Args: [3]Arg{addr}},
			next.Span.Union(addrSpan), nil
	}

	r1, r1Span, err := p.parseArgGeneralRegister(instrSpan)
	if err != nil {
		return PseudoInstruction{}, diag.Span{}, err
	}

	if next, ok := p.peek(); ok && next.Kind == TokenSpecialRegisterName {
		switch next.Special {
		case SpecialK:
			p.advance()

			return PseudoInstruction{Op: PseudoLdFromK, Args: [3]Arg{r1}},
				r1Span.Union(next.Span), nil
		case SpecialDT:
			p.advance()

			return PseudoInstruction{Op: PseudoLdFromDt, Args: [3]Arg{r1}},
				r1Span.Union(next.Span), nil
		}
	}

	arg2, arg2Span, err := regOrByte(r1Span)
	if err != nil {
		return PseudoInstruction{}, diag.Span{}, err
	}

	return PseudoInstruction{Op: PseudoLd, Args: [3]Arg{r1, arg2}},
		r1Span.Union(arg2Span), nil
}

// parseArgGeneralRegister accepts an alias or a general register name.
func (p *parser) parseArgGeneralRegister(previousSpan diag.Span) (Arg, diag.Span, *parseError) {
	token := p.advance()

	switch token.Kind {
	case TokenIdentifier:
		return aliasArg(token.Text), token.Span, nil
	case TokenGeneralRegisterName:
		return regArg(token.Reg), token.Span, nil
	}

	return Arg{}, diag.Span{}, &parseError{
		token:        token,
		previousSpan: &previousSpan,
		message:      "Expected alias or general register name for this argument",
	}
}

// parseArgByte accepts an alias or a numeric literal that fits in 8 bits.
func (p *parser) parseArgByte(previousSpan diag.Span) (Arg, diag.Span, *parseError) {
	token := p.advance()

	switch {
	case token.Kind == TokenIdentifier:
		return aliasArg(token.Text), token.Span, nil
	case token.Kind == TokenNumericLiteral && token.Num <= 0xFF:
		return numArg(token.Num), token.Span, nil
	case token.Kind == TokenNumericLiteral:
		return Arg{}, diag.Span{}, &parseError{
			token:        token,
			previousSpan: &previousSpan,
			message:      "Numeric literal too large for argument which was expected to be 1 byte",
		}
	}

	return Arg{}, diag.Span{}, &parseError{
		token:        token,
		previousSpan: &previousSpan,
		message:      "Expected alias or numeric literal (byte) for this argument",
	}
}

// parseArgNibble accepts an alias or a numeric literal that fits in 4 bits.
func (p *parser) parseArgNibble(previousSpan diag.Span) (Arg, diag.Span, *parseError) {
	token := p.advance()

	switch {
	case token.Kind == TokenIdentifier:
		return aliasArg(token.Text), token.Span, nil
	case token.Kind == TokenNumericLiteral && token.Num <= 0xF:
		return numArg(token.Num), token.Span, nil
	case token.Kind == TokenNumericLiteral:
		return Arg{}, diag.Span{}, &parseError{
			token:        token,
			previousSpan: &previousSpan,
			message:      "Numeric literal too large for argument which was expected to be 1 nibble",
		}
	}

	return Arg{}, diag.Span{}, &parseError{
		token:        token,
		previousSpan: &previousSpan,
		message:      "Expected alias or numeric literal (nibble) for this argument",
	}
}

// parseArgAddr accepts an alias or a numeric literal that fits in 12 bits.
func (p *parser) parseArgAddr(previousSpan diag.Span) (Arg, diag.Span, *parseError) {
	token := p.advance()

	switch {
	case token.Kind == TokenIdentifier:
		return aliasArg(token.Text), token.Span, nil
	case token.Kind == TokenNumericLiteral && token.Num <= 0xFFF:
		return numArg(token.Num), token.Span, nil
	case token.Kind == TokenNumericLiteral:
		return Arg{}, diag.Span{}, &parseError{
			token:        token,
			previousSpan: &previousSpan,
			message:      "Numeric literal too large for argument which was expected to be 12 bits",
		}
	}

	return Arg{}, diag.Span{}, &parseError{
		token:        token,
		previousSpan: &previousSpan,
		message:      "Expected alias or numeric literal (12-bit) for this argument",
	}
}
