package romset_test

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/vic20emu/vic20/romset"
)

func buildPackage(t *testing.T, index string, files map[string][]byte) *bytes.Reader {
	t.Helper()

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

	return bytes.NewReader(buf.Bytes())
}

func binWithHeader(loadAddr uint16, payload ...byte) []byte {
	out := make([]byte, 2+len(payload))
	binary.LittleEndian.PutUint16(out, loadAddr)
	copy(out[2:], payload)
	return out
}

const minimalIndex = `[
	{"name": "pal kernal", "fileNames": ["kernal-pal.bin"], "fileType": "kernal", "memory": "unexpanded", "region": "pal"},
	{"name": "ntsc kernal", "fileNames": ["kernal-ntsc.bin"], "fileType": "kernal", "memory": "unexpanded", "region": "ntsc"},
	{"name": "basic", "fileNames": ["basic.bin"], "fileType": "basic", "memory": "unexpanded", "region": "default"},
	{"name": "character", "fileNames": ["char.bin"], "fileType": "character", "memory": "unexpanded", "region": "default"}
]`

func minimalFiles() map[string][]byte {
	return map[string][]byte{
		"kernal-pal.bin":  binWithHeader(0xe000, 1, 2, 3),
		"kernal-ntsc.bin": binWithHeader(0xe000, 4, 5, 6),
		"basic.bin":       binWithHeader(0xc000, 7, 8, 9),
		"char.bin":        binWithHeader(0x8000, 10, 11, 12),
	}
}

func TestLoadMinimalPackage(t *testing.T) {
	r := buildPackage(t, minimalIndex, minimalFiles())

	set, err := romset.Load(r, r.Size())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	kernal, ok := set.Kernal("pal")
	if !ok {
		t.Fatalf("pal kernal not found")
	}
	if kernal.LoadAddr != 0xe000 {
		t.Errorf("kernal load address: got %#04x, wanted 0xe000", kernal.LoadAddr)
	}
	if len(kernal.Data) != 3 || kernal.Data[0] != 1 {
		t.Errorf("kernal payload not stripped of its load-address header: %v", kernal.Data)
	}

	if _, ok := set.Basic("default"); !ok {
		t.Errorf("default basic not found")
	}
	if _, ok := set.Character("default"); !ok {
		t.Errorf("default character rom not found")
	}
	if _, ok := set.Cartridge(); ok {
		t.Errorf("cartridge reported present in a package with none")
	}
}

func TestLoadMissingRequiredROM(t *testing.T) {
	index := `[
		{"name": "pal kernal", "fileNames": ["kernal-pal.bin"], "fileType": "kernal", "memory": "unexpanded", "region": "pal"}
	]`
	files := map[string][]byte{
		"kernal-pal.bin": binWithHeader(0xe000, 1),
	}
	r := buildPackage(t, index, files)

	if _, err := romset.Load(r, r.Size()); err == nil {
		t.Fatalf("Load succeeded on a package missing the NTSC kernal, default basic and default character rom")
	}
}

func TestLoadMissingIndex(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("kernal-pal.bin")
	if err != nil {
		t.Fatalf("creating kernal-pal.bin: %v", err)
	}
	if _, err := fw.Write(binWithHeader(0xe000, 1)); err != nil {
		t.Fatalf("writing kernal-pal.bin: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	r := bytes.NewReader(buf.Bytes())

	if _, err := romset.Load(r, r.Size()); err == nil {
		t.Fatalf("Load succeeded on a package with no index.json")
	}
}

func TestRegionFallsBackToDefault(t *testing.T) {
	index := `[
		{"name": "pal kernal", "fileNames": ["kernal-pal.bin"], "fileType": "kernal", "memory": "unexpanded", "region": "pal"},
		{"name": "ntsc kernal", "fileNames": ["kernal-ntsc.bin"], "fileType": "kernal", "memory": "unexpanded", "region": "ntsc"},
		{"name": "basic", "fileNames": ["basic.bin"], "fileType": "basic", "memory": "unexpanded", "region": "default"},
		{"name": "character", "fileNames": ["char.bin"], "fileType": "character", "memory": "unexpanded", "region": "default"}
	]`
	r := buildPackage(t, index, minimalFiles())

	set, err := romset.Load(r, r.Size())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// No Japan-specific BASIC was supplied; it must fall back to default.
	if _, ok := set.Basic("japan"); !ok {
		t.Errorf("Basic(\"japan\") did not fall back to the default-region rom")
	}
}
