package encoder_test

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/ngc6302h/nvm/encoder"
	"github.com/ngc6302h/nvm/lexer"
	"github.com/ngc6302h/nvm/parser"
	"github.com/ngc6302h/nvm/source"
)

func assemble(t *testing.T, src string) *encoder.Image {
	t.Helper()
	buf := source.NewBuffer("test", []byte(src))
	l := lexer.New(buf)
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	objs, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	img, err := encoder.Encode(objs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return img
}

func TestEncode_MinimalProgram(t *testing.T) {
	img := assemble(t, "start: int 0xFF")
	if img.EntryPoint != 0 || img.LoadOffset != 0 {
		t.Fatalf("entry/load offset = %d/%d, want 0/0", img.EntryPoint, img.LoadOffset)
	}
	if len(img.Payload) != 4 {
		t.Fatalf("payload length = %d, want 4", len(img.Payload))
	}
	w := binary.LittleEndian.Uint32(img.Payload)
	if w&(1<<31) != 0 {
		t.Fatal("wide bit set, want short encoding")
	}
	if w&(1<<30) != 0 {
		t.Fatal("use_imm should be set (bit 30 clear)")
	}
	if field := w & 0xFFF; field != 0xFF {
		t.Fatalf("immediate field = %#x, want 0xFF", field)
	}
}

func TestEncode_RegisterAdd(t *testing.T) {
	img := assemble(t, "start: add r1, r2, r3")
	w := binary.LittleEndian.Uint32(img.Payload)
	if w&(1<<31) != 0 || w&(1<<30) == 0 {
		t.Fatal("expected short, register-operand encoding (use_imm clear)")
	}
	if opcode := (w >> 24) & 0x3F; opcode != 0 {
		t.Fatalf("opcode = %d, want 0 (Add)", opcode)
	}
	if op1 := (w >> 20) & 0xF; op1 != 1 {
		t.Fatalf("op1 = %d, want 1", op1)
	}
	if op2 := (w >> 16) & 0xF; op2 != 2 {
		t.Fatalf("op2 = %d, want 2", op2)
	}
	if op3 := (w >> 12) & 0xF; op3 != 3 {
		t.Fatalf("op3 = %d, want 3", op3)
	}
	if field := w & 0xFFF; field != 0 {
		t.Fatalf("immediate field = %#x, want 0", field)
	}
}

func TestEncode_WideImmediate(t *testing.T) {
	img := assemble(t, "start: add r1, r2, 5000")
	if len(img.Payload) != 8 {
		t.Fatalf("payload length = %d, want 8", len(img.Payload))
	}
	word := binary.LittleEndian.Uint64(img.Payload)
	if word&(uint64(1)<<63) == 0 {
		t.Fatal("wide bit should be set")
	}
	if imm := word & ((uint64(1) << 44) - 1); imm != 5000 {
		t.Fatalf("immediate = %d, want 5000", imm)
	}
}

func TestEncode_ShortImmediate(t *testing.T) {
	img := assemble(t, "start: add r1, r2, 10")
	if len(img.Payload) != 4 {
		t.Fatalf("payload length = %d, want 4", len(img.Payload))
	}
	w := binary.LittleEndian.Uint32(img.Payload)
	if w&(1<<31) != 0 {
		t.Fatal("wide bit should be clear")
	}
	if field := w & 0xFFF; field != 10 {
		t.Fatalf("immediate field = %d, want 10", field)
	}
}

func TestEncode_ForwardJump(t *testing.T) {
	img := assemble(t, "start: jmp end\n\tadd r0, r0, r0\nend: int 0xFF\n")
	if img.EntryPoint != 0 {
		t.Fatalf("entry point = %d, want 0", img.EntryPoint)
	}
	if len(img.Payload) != 12 {
		t.Fatalf("payload length = %d, want 12", len(img.Payload))
	}
	w := binary.LittleEndian.Uint32(img.Payload[0:4])
	if opcode := (w >> 24) & 0x3F; opcode != uint32(isaJe) {
		t.Fatalf("opcode = %d, want Je (%d)", opcode, isaJe)
	}
	if field := w & 0xFFF; field != 2 {
		t.Fatalf("jump offset field = %d, want 2", field)
	}
}

// isaJe mirrors isa.Je's ordinal without importing isa directly into the
// external test package's arithmetic, keeping the expectation readable.
const isaJe = 16

func TestEncode_OutOfRangeJump(t *testing.T) {
	var b strings.Builder
	b.WriteString("start: jmp end\n")
	for i := 0; i < 2049; i++ {
		b.WriteString("\tadd r0, r0, r0\n")
	}
	b.WriteString("end: int 0xFF\n")

	buf := source.NewBuffer("test", []byte(b.String()))
	l := lexer.New(buf)
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	objs, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = encoder.Encode(objs)
	if err == nil {
		t.Fatal("expected an out-of-range jump error")
	}
	if !strings.Contains(err.Error(), "end") || !strings.Contains(err.Error(), "register jump") {
		t.Fatalf("error %q does not mention the tag and a register-jump suggestion", err.Error())
	}
}

func TestEncode_MissingStart(t *testing.T) {
	img, err := func() (*encoder.Image, error) {
		buf := source.NewBuffer("test", []byte("foo: int 0xFF"))
		l := lexer.New(buf)
		toks, terr := l.Tokenize()
		if terr != nil {
			return nil, terr
		}
		objs, perr := parser.Parse(toks)
		if perr != nil {
			return nil, perr
		}
		return encoder.Encode(objs)
	}()
	if err == nil {
		t.Fatalf("expected a missing-start error, got image %+v", img)
	}
	if !strings.Contains(err.Error(), "start") {
		t.Fatalf("error %q does not mention the missing start tag", err.Error())
	}
}

func TestEncode_DuplicateTag(t *testing.T) {
	_, err := func() (*encoder.Image, error) {
		buf := source.NewBuffer("test", []byte("start: int 0\nstart: int 1\n"))
		l := lexer.New(buf)
		toks, terr := l.Tokenize()
		if terr != nil {
			return nil, terr
		}
		objs, perr := parser.Parse(toks)
		if perr != nil {
			return nil, perr
		}
		return encoder.Encode(objs)
	}()
	if err == nil {
		t.Fatal("expected a duplicate tag error")
	}
}

func TestEncode_AddrIdempotence(t *testing.T) {
	img := assemble(t, ".addr 0x1000\n.addr 0x2000\nstart: int 0\n")
	if img.LoadOffset != 0x2000 {
		t.Fatalf("load offset = %#x, want 0x2000", img.LoadOffset)
	}
}

func TestEncode_LoadStoreWidth(t *testing.T) {
	img := assemble(t, "start: load 32 r1 to r2\n")
	w := binary.LittleEndian.Uint32(img.Payload)
	if op2 := (w >> 16) & 0xF; op2 != 2 {
		t.Fatalf("width field = %d, want 2 (32-bit code)", op2)
	}
}

func TestEncode_SmallLiteralStoreAddressIsWide(t *testing.T) {
	img := assemble(t, "start: store 8 r1 in 5\n")
	if len(img.Payload) != 8 {
		t.Fatalf("payload length = %d, want 8 (a literal store address must encode wide, "+
			"never as a short PC-relative offset)", len(img.Payload))
	}
	word := binary.LittleEndian.Uint64(img.Payload)
	if word&(uint64(1)<<63) == 0 {
		t.Fatal("wide bit should be set for a literal store address")
	}
	if imm := word & ((uint64(1) << 44) - 1); imm != 5 {
		t.Fatalf("address = %d, want 5", imm)
	}
}

func TestEncode_SmallLiteralJumpTargetIsWide(t *testing.T) {
	img := assemble(t, "start: jmp 5\n")
	if len(img.Payload) != 8 {
		t.Fatalf("payload length = %d, want 8 (a literal jump target must encode wide)", len(img.Payload))
	}
	word := binary.LittleEndian.Uint64(img.Payload)
	if word&(uint64(1)<<63) == 0 {
		t.Fatal("wide bit should be set for a literal jump target")
	}
}
