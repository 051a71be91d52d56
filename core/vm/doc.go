/*
Package vm implements the Iridium register machine.

The machine executes a flat byte program. Every instruction is one opcode
byte followed by the operands its opcode implies: a single byte per register
index, two big-endian bytes per immediate. There are no length prefixes, so
instruction boundaries are only known by decoding from offset 0.

State consists of 32 signed 32-bit registers, a program counter, a heap that
only grows (ALOC), the equal flag set by the comparison instructions and read
by JMPE, and the remainder of the last DIV.

Two instruction sets are available. The reference set reproduces the original
machine, where JMPB adds its offset like JMPF and a JMPE with a false flag
does not consume its operand. The fixed set (Config.FixedJumps) makes JMPB
subtract and JMPE always consume the operand.
*/
package vm
