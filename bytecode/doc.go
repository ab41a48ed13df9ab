// Package bytecode decodes Direct3D 9 shader bytecode.
//
// A shader blob is a stream of little-endian 32-bit tokens: a version
// word followed by instructions, terminated by an end token. Comment
// instructions may embed metadata blocks; two are understood here:
//
//   - CTAB: the constant table naming uniform registers, with structured
//     type descriptors and optional default values.
//   - PRES: a preshader, a small program evaluated on the CPU that derives
//     constant registers from uniform inputs. It carries its own constant
//     table and a table of literal values.
//
// # Usage
//
//	shader, err := bytecode.Read(data, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(shader.Disassemble())
//
// Decoding never panics on malformed input: truncated streams and
// unsupported instructions are reported as *Error values.
package bytecode
