// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface.
// This enables cleaner API design when a decoder needs to select its byte order
// at runtime instead of at compile time.
//
// # Basic usage
//
// KMA datagrams are always little-endian, so a KMA decoder can use the stdlib
// engine directly:
//
//	engine := endian.GetLittleEndianEngine()
//	v := engine.Uint32(data[0:4])
//
// EMX datagrams carry no in-band byte-order mark; the stream auto-detects
// native vs. swapped and then uses Swap16/32/64 and SwapF32/64 to normalize
// individual fields to host order in place.
//
// # Thread safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Create a byte slice pointing to the memory address of 'i'.
	// We only need the first byte.
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host's native byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Swap16 reverses the byte order of a 16-bit value.
func Swap16(v uint16) uint16 {
	return v<<8 | v>>8
}

// Swap32 reverses the byte order of a 32-bit value.
func Swap32(v uint32) uint32 {
	return (v&0x000000FF)<<24 |
		(v&0x0000FF00)<<8 |
		(v&0x00FF0000)>>8 |
		(v&0xFF000000)>>24
}

// Swap64 reverses the byte order of a 64-bit value.
func Swap64(v uint64) uint64 {
	return (v&0x00000000000000FF)<<56 |
		(v&0x000000000000FF00)<<40 |
		(v&0x0000000000FF0000)<<24 |
		(v&0x00000000FF000000)<<8 |
		(v&0x000000FF00000000)>>8 |
		(v&0x0000FF0000000000)>>24 |
		(v&0x00FF000000000000)>>40 |
		(v&0xFF00000000000000)>>56
}

// SwapF32 reverses the byte order of a 32-bit float via bit reinterpretation.
// The value is never manipulated arithmetically.
func SwapF32(f float32) float32 {
	return math.Float32frombits(Swap32(math.Float32bits(f)))
}

// SwapF64 reverses the byte order of a 64-bit float via bit reinterpretation.
func SwapF64(f float64) float64 {
	return math.Float64frombits(Swap64(math.Float64bits(f)))
}

// Int16FromBytes reads a little-endian signed 16-bit value at an arbitrary
// (possibly unaligned) offset.
func Int16FromBytes(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }

// Int32FromBytes reads a little-endian signed 32-bit value at an arbitrary offset.
func Int32FromBytes(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) }

// PutInt16 writes a little-endian signed 16-bit value at an arbitrary offset.
func PutInt16(b []byte, v int16) { binary.LittleEndian.PutUint16(b, uint16(v)) }

// PutInt32 writes a little-endian signed 32-bit value at an arbitrary offset.
func PutInt32(b []byte, v int32) { binary.LittleEndian.PutUint32(b, uint32(v)) }
