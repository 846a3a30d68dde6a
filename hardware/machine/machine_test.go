package machine_test

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/vic20emu/vic20/hardware/machine"
	"github.com/vic20emu/vic20/hardware/preferences"
	"github.com/vic20emu/vic20/hardware/vic"
	"github.com/vic20emu/vic20/romset"
)

func binWithHeader(loadAddr uint16, size int, fill uint8) []byte {
	out := make([]byte, 2+size)
	binary.LittleEndian.PutUint16(out, loadAddr)
	for i := 2; i < len(out); i++ {
		out[i] = fill
	}
	return out
}

// loadROMSet builds a minimal, valid ROM package entirely in memory (no
// filesystem access), with every kernal's reset vector pointed at its
// own first byte, an NOP, so the CPU idles cleanly once started. If
// cartData is non-nil, a cartridge entry loading at cartLoadAddr is
// added too.
func loadROMSet(t *testing.T, cartLoadAddr uint16, cartData []byte) *romset.Set {
	t.Helper()

	kernal := binWithHeader(0xe000, 0x2000, 0xea) // NOP-filled
	kernal[2+0x1ffc] = 0x00                       // reset vector low -> 0xe000
	kernal[2+0x1ffd] = 0xe0                       // reset vector high

	files := map[string][]byte{
		"kernal-pal.bin":  kernal,
		"kernal-ntsc.bin": kernal,
		"basic.bin":       binWithHeader(0xc000, 0x2000, 0xea),
		"char.bin":        binWithHeader(0x8000, 0x1000, 0x00),
	}
	index := `[
		{"name": "pal kernal", "fileNames": ["kernal-pal.bin"], "fileType": "kernal", "memory": "unexpanded", "region": "pal"},
		{"name": "ntsc kernal", "fileNames": ["kernal-ntsc.bin"], "fileType": "kernal", "memory": "unexpanded", "region": "ntsc"},
		{"name": "basic", "fileNames": ["basic.bin"], "fileType": "basic", "memory": "unexpanded", "region": "default"},
		{"name": "character", "fileNames": ["char.bin"], "fileType": "character", "memory": "unexpanded", "region": "default"}`
	if cartData != nil {
		header := make([]byte, 2)
		binary.LittleEndian.PutUint16(header, cartLoadAddr)
		files["cart.bin"] = append(header, cartData...)
		index += `,
		{"name": "cart", "fileNames": ["cart.bin"], "fileType": "cartridge", "memory": "unexpanded", "region": "default"}`
	}
	index += `]`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	idxw, err := zw.Create("index.json")
	if err != nil {
		t.Fatalf("creating index.json: %v", err)
	}
	if _, err := idxw.Write([]byte(index)); err != nil {
		t.Fatalf("writing index.json: %v", err)
	}
	for name, data := range files {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	set, err := romset.Load(r, r.Size())
	if err != nil {
		t.Fatalf("romset.Load: %v", err)
	}
	return set
}

func newTestPrefs(t *testing.T) *preferences.Preferences {
	t.Helper()
	prefs, err := preferences.NewPreferences()
	if err != nil {
		t.Fatalf("NewPreferences: %v", err)
	}
	prefs.SetDefaults()
	return prefs
}

func TestResetLoadsKernalAndStartsRunning(t *testing.T) {
	m, err := machine.NewMachine(newTestPrefs(t), vic.PAL, preferences.ModelUnexpanded)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	roms := loadROMSet(t, 0, nil)
	if err := m.Reset(roms); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if m.State != machine.Loaded {
		t.Errorf("state after Reset: got %v, wanted Loaded", m.State)
	}

	if got, _ := m.Mem.Read(0xe000); got != 0xea {
		t.Errorf("kernal not installed at 0xe000: got %#02x", got)
	}

	m.Start()
	if m.State != machine.Running {
		t.Errorf("state after Start: got %v, wanted Running", m.State)
	}

	for i := 0; i < 10; i++ {
		if err := m.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
}

func TestNonAutobootCartridgeInjectsBootstrap(t *testing.T) {
	m, err := machine.NewMachine(newTestPrefs(t), vic.PAL, preferences.ModelUnexpanded)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	const cartAddr = uint16(0x2000) // BLK1, not the 0xa000 autoboot address
	roms := loadROMSet(t, cartAddr, []byte{0x60}) // RTS

	if err := m.Reset(roms); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	jmp, _ := m.Mem.Read(0x0140)
	lo, _ := m.Mem.Read(0x0141)
	hi, _ := m.Mem.Read(0x0142)
	if jmp != 0x4c || uint16(hi)<<8|uint16(lo) != cartAddr {
		t.Errorf("bootstrap stub at 0x0140: got JMP %#02x %#02x%02x, wanted JMP to %#04x", jmp, hi, lo, cartAddr)
	}

	count, _ := m.Mem.Read(0x00c6)
	if count != 7 {
		t.Errorf("keyboard buffer count: got %d, wanted 7 (len(\"SYS320\\r\"))", count)
	}
	first, _ := m.Mem.Read(0x0277)
	if first != 'S' {
		t.Errorf("keyboard buffer first byte: got %q, wanted 'S'", first)
	}
}

func TestAutobootCartridgeSkipsBootstrap(t *testing.T) {
	m, err := machine.NewMachine(newTestPrefs(t), vic.PAL, preferences.ModelUnexpanded)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	const cartAddr = uint16(0xa000)
	roms := loadROMSet(t, cartAddr, []byte{0x60})

	if err := m.Reset(roms); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	count, _ := m.Mem.Read(0x00c6)
	if count != 0 {
		t.Errorf("keyboard buffer count should be untouched for an autoboot cart: got %d", count)
	}
	cartByte, _ := m.Mem.Read(cartAddr)
	if cartByte != 0x60 {
		t.Errorf("cartridge not installed at its load address: got %#02x", cartByte)
	}
}

func TestNMIRequestedOnVIA1TimerUnderflow(t *testing.T) {
	m, err := machine.NewMachine(newTestPrefs(t), vic.PAL, preferences.ModelUnexpanded)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	roms := loadROMSet(t, 0, nil)
	if err := m.Reset(roms); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	m.Start()

	// Arm VIA1's timer 1 for a one-shot fire three ticks from now and
	// enable its interrupt, then confirm the CPU's program counter
	// diverts to the NMI vector once it underflows.
	via1Base := uint16(0x9110)
	if err := m.Mem.Write(via1Base+0xe, 0xc0); err != nil { // IER: set bit7, enable T1
		t.Fatalf("Write IER: %v", err)
	}
	if err := m.Mem.Write(via1Base+0x4, 0x02); err != nil { // T1C-L latch
		t.Fatalf("Write T1C-L: %v", err)
	}
	if err := m.Mem.Write(via1Base+0x5, 0x00); err != nil { // T1C-H: load+arm
		t.Fatalf("Write T1C-H: %v", err)
	}

	for i := 0; i < 6; i++ {
		if err := m.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}

	if !m.VIA1.IRQ() {
		t.Errorf("VIA1 IRQ line never went high after its timer underflowed")
	}
}

// TestNMIEdgeSurvivesClearBetweenTicks is a regression test for a stale
// edge sample: if the low-to-high transition used to be detected by
// comparing this tick's post-CycleUp VIA1.IRQ() against a value cached
// from the *previous* tick's post-CycleUp sample, a clear (simulating an
// NMI handler reading T1C-L) followed by a re-expiry before the next
// tick's CycleUp would be invisible -- both the stale cached value and
// the freshly re-expired value read true, so no edge is seen. Tick must
// instead resample VIA1.IRQ() fresh at the start of every tick.
func TestNMIEdgeSurvivesClearBetweenTicks(t *testing.T) {
	m, err := machine.NewMachine(newTestPrefs(t), vic.PAL, preferences.ModelUnexpanded)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	roms := loadROMSet(t, 0, nil)
	if err := m.Reset(roms); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	// A one-instruction NMI handler so each service is quickly returned
	// from and the kernal's NOP stream resumes.
	if err := m.Mem.Write(0x0300, 0x40); err != nil { // RTI
		t.Fatalf("Write handler: %v", err)
	}
	if err := m.Mem.Write(0xfffa, 0x00); err != nil {
		t.Fatalf("Write NMI vector low: %v", err)
	}
	if err := m.Mem.Write(0xfffb, 0x03); err != nil {
		t.Fatalf("Write NMI vector high: %v", err)
	}

	m.Start()

	via1Base := uint16(0x9110)
	if err := m.Mem.Write(via1Base+0xb, 0x40); err != nil { // ACR bit6: T1 continuous mode
		t.Fatalf("Write ACR: %v", err)
	}
	if err := m.Mem.Write(via1Base+0xe, 0xc0); err != nil { // IER: enable T1
		t.Fatalf("Write IER: %v", err)
	}
	if err := m.Mem.Write(via1Base+0x6, 50); err != nil { // T1 latch low
		t.Fatalf("Write T1L-L: %v", err)
	}
	if err := m.Mem.Write(via1Base+0x5, 0x00); err != nil { // T1C-H: load+arm
		t.Fatalf("Write T1C-H: %v", err)
	}

	serviced := false
	for i := 0; i < 200 && !serviced; i++ {
		if err := m.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if m.CPU.PC == 0x0300 {
			serviced = true
		}
	}
	if !serviced {
		t.Fatalf("first NMI was never serviced")
	}

	// Simulate the handler's own read of T1C-L clearing the flag well
	// ahead of the continuous timer's next underflow.
	if _, err := m.Mem.Read(via1Base + 0x4); err != nil {
		t.Fatalf("Read T1C-L: %v", err)
	}
	if m.VIA1.IRQ() {
		t.Fatalf("IRQ still set immediately after clearing T1C-L")
	}

	for i := 0; i < 60 && !m.VIA1.IRQ(); i++ {
		if err := m.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if !m.VIA1.IRQ() {
		t.Fatalf("continuous timer never re-expired")
	}

	servicedAgain := false
	for i := 0; i < 50 && !servicedAgain; i++ {
		if err := m.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if m.CPU.PC == 0x0300 {
			servicedAgain = true
		}
	}
	if !servicedAgain {
		t.Errorf("second NMI, after a clear and re-expiry, was never serviced -- edge missed")
	}
}
