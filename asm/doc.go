// Package asm assembles Iridium text into bytecode.
//
// Each line holds one instruction: a lowercase mnemonic followed by up to
// three operands, either a register ($0 .. $255) or a 16-bit immediate
// (#0 .. #65535). Everything after a ';' is a comment.
//
//	load $0 #500
//	load $1 #10
//	mul $0 $1 $2
//	hlt
//
// Operands are encoded exactly as written. Nothing is padded, so the
// unused trailing byte of the comparison instructions and the three bytes
// skipped by nop have to be spelled out, e.g. "eq $0 $1 $0".
package asm
