package protowire

import (
	"math"
	"reflect"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	enc := NewEncoder()
	enc.EncodeVarint(1, 42)
	enc.EncodeString(2, "olá")
	enc.EncodeBool(3, true)
	enc.EncodeFixed32(4, 1.5)
	enc.EncodePackedVarint(5, []int32{1, 2, 300})
	enc.EncodePackedFloat32(6, []float32{0.25, -1, math.Pi})
	enc.EncodeBytes(7, []byte{0xde, 0xad})

	dec := NewDecoder(enc.Bytes())
	seen := map[int]bool{}
	for !dec.Done() {
		fieldNum, wireType, err := dec.ReadTag()
		if err != nil {
			t.Fatalf("ReadTag: %v", err)
		}
		seen[fieldNum] = true
		switch fieldNum {
		case 1:
			v, err := dec.ReadVarint()
			if err != nil || v != 42 {
				t.Errorf("campo 1: quer 42, veio %d (%v)", v, err)
			}
		case 2:
			s, err := dec.ReadString()
			if err != nil || s != "olá" {
				t.Errorf("campo 2: quer olá, veio %q (%v)", s, err)
			}
		case 3:
			b, err := dec.ReadBool()
			if err != nil || !b {
				t.Errorf("campo 3: quer true (%v)", err)
			}
		case 4:
			f, err := dec.ReadFixed32()
			if err != nil || f != 1.5 {
				t.Errorf("campo 4: quer 1.5, veio %v (%v)", f, err)
			}
		case 5:
			vs, err := dec.ReadPackedVarint()
			if err != nil || !reflect.DeepEqual(vs, []int32{1, 2, 300}) {
				t.Errorf("campo 5: veio %v (%v)", vs, err)
			}
		case 6:
			fs, err := dec.ReadPackedFloat32()
			if err != nil || !reflect.DeepEqual(fs, []float32{0.25, -1, math.Pi}) {
				t.Errorf("campo 6: veio %v (%v)", fs, err)
			}
		case 7:
			b, err := dec.ReadBytes()
			if err != nil || !reflect.DeepEqual(b, []byte{0xde, 0xad}) {
				t.Errorf("campo 7: veio %x (%v)", b, err)
			}
		default:
			if err := dec.SkipField(wireType); err != nil {
				t.Fatalf("SkipField(%d): %v", wireType, err)
			}
		}
	}
	for f := 1; f <= 7; f++ {
		if !seen[f] {
			t.Errorf("campo %d não apareceu no buffer", f)
		}
	}
}

func TestZeroValuesAreSkipped(t *testing.T) {
	enc := NewEncoder()
	enc.EncodeVarint(1, 0)
	enc.EncodeBool(2, false)
	enc.EncodeString(3, "")
	enc.EncodeBytes(4, nil)
	enc.EncodePackedVarint(5, nil)
	enc.EncodePackedFloat32(6, nil)
	if len(enc.Bytes()) != 0 {
		t.Fatalf("valores default não deveriam serializar nada, veio %d bytes", len(enc.Bytes()))
	}
}

func TestSkipFieldAdvancesAllWireTypes(t *testing.T) {
	enc := NewEncoder()
	enc.EncodeVarint(1, 7)
	enc.EncodeString(2, "pulado")
	enc.EncodeFixed32(3, 9)
	enc.EncodeVarint(4, 99)

	dec := NewDecoder(enc.Bytes())
	var last int64
	for !dec.Done() {
		fieldNum, wireType, err := dec.ReadTag()
		if err != nil {
			t.Fatalf("ReadTag: %v", err)
		}
		if fieldNum == 4 {
			last, err = dec.ReadVarint()
			if err != nil {
				t.Fatalf("ReadVarint: %v", err)
			}
			continue
		}
		if err := dec.SkipField(wireType); err != nil {
			t.Fatalf("SkipField(%d): %v", wireType, err)
		}
	}
	if last != 99 {
		t.Fatalf("depois de pular os campos anteriores, campo 4 deveria ser 99, veio %d", last)
	}
}

func TestTruncatedInputErrors(t *testing.T) {
	// Tag do campo 1, length-delimited, declarando 10 bytes sem tê-los.
	dec := NewDecoder([]byte{0x0a, 0x0a, 0x01})
	if _, _, err := dec.ReadTag(); err != nil {
		t.Fatalf("ReadTag: %v", err)
	}
	if _, err := dec.ReadBytes(); err == nil {
		t.Fatal("comprimento maior que o buffer deveria dar erro")
	}

	// Varint sem byte final.
	dec = NewDecoder([]byte{0x80, 0x80})
	if _, err := dec.ReadVarint(); err == nil {
		t.Fatal("varint truncado deveria dar erro")
	}

	// Fixed32 com só 2 bytes.
	dec = NewDecoder([]byte{0x01, 0x02})
	if _, err := dec.ReadFixed32(); err == nil {
		t.Fatal("fixed32 truncado deveria dar erro")
	}
}

func TestPackedFloat32RejectsBadLength(t *testing.T) {
	enc := NewEncoder()
	enc.EncodeBytes(1, []byte{1, 2, 3, 4, 5})

	dec := NewDecoder(enc.Bytes())
	if _, _, err := dec.ReadTag(); err != nil {
		t.Fatalf("ReadTag: %v", err)
	}
	if _, err := dec.ReadPackedFloat32(); err == nil {
		t.Fatal("packed float32 com tamanho não múltiplo de 4 deveria dar erro")
	}
}
