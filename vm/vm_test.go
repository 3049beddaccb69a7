package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ngc6302h/nvm/encoder"
	"github.com/ngc6302h/nvm/lexer"
	"github.com/ngc6302h/nvm/parser"
	"github.com/ngc6302h/nvm/source"
	"github.com/ngc6302h/nvm/vm"
)

func assembleImage(t *testing.T, src string) *encoder.Image {
	t.Helper()
	buf := source.NewBuffer("test", []byte(src))
	toks, err := lexer.New(buf).Tokenize()
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

func TestRun_HaltOnIntHandler(t *testing.T) {
	img := assembleImage(t, "start: int 0xFF")
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := inst.InstructionCount(); n != 0 {
		t.Fatalf("instruction count = %d, want 0 (halt doesn't count toward execution)", n)
	}
}

func TestRun_AddAndHalt(t *testing.T) {
	img := assembleImage(t, "start: add r1, r1, 5\n\tadd r1, r1, 10\n\tint 0xFF\n")
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := inst.Register(1); got != 15 {
		t.Fatalf("r1 = %d, want 15", got)
	}
}

func TestRun_WriteByte(t *testing.T) {
	img := assembleImage(t, "start: add r1, r0, 65\n\tint 0\n\tint 0xFF\n")
	var out bytes.Buffer
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint, vm.Output(&out))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "A" {
		t.Fatalf("output = %q, want %q", out.String(), "A")
	}
}

func TestRun_ReadByte(t *testing.T) {
	img := assembleImage(t, "start: int 1\n\tint 0xFF\n")
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint, vm.Input(strings.NewReader("Z")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := inst.Register(1); got != 'Z' {
		t.Fatalf("r1 = %d, want %d", got, 'Z')
	}
}

func TestRun_LoadStoreRoundTrip(t *testing.T) {
	img := assembleImage(t, strings.Join([]string{
		"start: add r1, r0, 42",
		"\tstore 32 r1 in 0x2000",
		"\tload 32 0x2000 to r2",
		"\tint 0xFF",
	}, "\n"))
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := inst.Register(2); got != 42 {
		t.Fatalf("r2 = %d, want 42", got)
	}
}

func TestRun_StoreToSmallLiteralAddress(t *testing.T) {
	img := assembleImage(t, strings.Join([]string{
		"start: add r1, r0, 42",
		"\tstore 8 r1 in 5",
		"\tload 8 5 to r2",
		"\tint 0xFF",
	}, "\n"))
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := inst.Register(2); got != 42 {
		t.Fatalf("r2 = %d, want 42 (a small literal store/load address must be absolute, "+
			"not decoded as a PC-relative word offset)", got)
	}
}

func TestRun_ForwardJumpSkipsInstruction(t *testing.T) {
	img := assembleImage(t, strings.Join([]string{
		"start: jmp skip",
		"\tadd r1, r0, 999",
		"skip:  add r1, r0, 7",
		"\tint 0xFF",
	}, "\n"))
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := inst.Register(1); got != 7 {
		t.Fatalf("r1 = %d, want 7 (the jump should have skipped the first add)", got)
	}
}

func TestRun_ConditionalJumpNotTaken(t *testing.T) {
	img := assembleImage(t, strings.Join([]string{
		"start: add r1, r0, 1",
		"\tadd r2, r0, 2",
		"\tjmp away if r1 == r2",
		"\tadd r3, r0, 1",
		"away:  int 0xFF",
	}, "\n"))
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := inst.Register(3); got != 1 {
		t.Fatalf("r3 = %d, want 1 (unequal registers must not take the je)", got)
	}
}

func TestRun_UnknownInterruptErrors(t *testing.T) {
	img := assembleImage(t, "start: int 42")
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err == nil {
		t.Fatal("expected an error for an unregistered interrupt code")
	}
}

func TestRun_CustomHandler(t *testing.T) {
	img := assembleImage(t, "start: int 42\n\tint 0xFF\n")
	called := false
	inst, err := vm.New(img.Payload, img.LoadOffset, img.EntryPoint, vm.Handler(42, func(i *vm.Instance) (bool, error) {
		called = true
		return false, nil
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !called {
		t.Fatal("custom handler for code 42 was not invoked")
	}
}
