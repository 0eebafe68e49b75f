// Package nbt implementa um escritor NBT (Named Binary Tag) mínimo, o
// suficiente para gerar arquivos .schem. Os valores são big-endian,
// como o formato manda.
package nbt

import (
	"encoding/binary"
	"math"
)

// Tipos de tag do formato NBT.
const (
	TagEnd       = 0
	TagByte      = 1
	TagShort     = 2
	TagInt       = 3
	TagLong      = 4
	TagFloat     = 5
	TagDouble    = 6
	TagByteArray = 7
	TagString    = 8
	TagList      = 9
	TagCompound  = 10
	TagIntArray  = 11
)

// Writer acumula tags NBT num buffer.
type Writer struct {
	buf []byte
}

// NewWriter cria um escritor vazio.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 1024)}
}

// Bytes devolve o buffer serializado.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeName(name string) {
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(name)))
	w.buf = append(w.buf, l[:]...)
	w.buf = append(w.buf, name...)
}

func (w *Writer) writeTagHeader(tagType byte, name string) {
	w.buf = append(w.buf, tagType)
	w.writeName(name)
}

// BeginCompound abre um compound nomeado. Feche com EndCompound.
func (w *Writer) BeginCompound(name string) {
	w.writeTagHeader(TagCompound, name)
}

// EndCompound fecha o compound aberto mais recente.
func (w *Writer) EndCompound() {
	w.buf = append(w.buf, TagEnd)
}

// WriteByte escreve um TAG_Byte nomeado.
func (w *Writer) WriteByte(name string, v int8) {
	w.writeTagHeader(TagByte, name)
	w.buf = append(w.buf, byte(v))
}

// WriteShort escreve um TAG_Short nomeado.
func (w *Writer) WriteShort(name string, v int16) {
	w.writeTagHeader(TagShort, name)
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteInt escreve um TAG_Int nomeado.
func (w *Writer) WriteInt(name string, v int32) {
	w.writeTagHeader(TagInt, name)
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteLong escreve um TAG_Long nomeado.
func (w *Writer) WriteLong(name string, v int64) {
	w.writeTagHeader(TagLong, name)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteDouble escreve um TAG_Double nomeado.
func (w *Writer) WriteDouble(name string, v float64) {
	w.writeTagHeader(TagDouble, name)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteString escreve um TAG_String nomeado.
func (w *Writer) WriteString(name, v string) {
	w.writeTagHeader(TagString, name)
	w.writeName(v)
}

// WriteByteArray escreve um TAG_Byte_Array nomeado.
func (w *Writer) WriteByteArray(name string, v []byte) {
	w.writeTagHeader(TagByteArray, name)
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(v)))
	w.buf = append(w.buf, l[:]...)
	w.buf = append(w.buf, v...)
}

// WriteIntArray escreve um TAG_Int_Array nomeado.
func (w *Writer) WriteIntArray(name string, v []int32) {
	w.writeTagHeader(TagIntArray, name)
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(v)))
	w.buf = append(w.buf, l[:]...)
	var b [4]byte
	for _, n := range v {
		binary.BigEndian.PutUint32(b[:], uint32(n))
		w.buf = append(w.buf, b[:]...)
	}
}
