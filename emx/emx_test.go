package emx

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDatagram assembles a full little-endian EMX datagram: 20-byte
// header, body, ETX, 16-bit checksum. The checksum is computed the same
// way the decoder verifies it so tests exercise the real algorithm.
func buildDatagram(t *testing.T, datagramType byte, model uint16, date, timeMS uint32, counter, serial uint16, body []byte) []byte {
	t.Helper()

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint16(header[6:8], model)
	header[4] = startByte
	header[5] = datagramType
	binary.LittleEndian.PutUint32(header[8:12], date)
	binary.LittleEndian.PutUint32(header[12:16], timeMS)
	binary.LittleEndian.PutUint16(header[16:18], counter)
	binary.LittleEndian.PutUint16(header[18:20], serial)

	tail := append(append([]byte{}, body...), endByte)

	var sum uint16
	for _, b := range header[5:headerSize] {
		sum += uint16(b)
	}
	for _, b := range body {
		sum += uint16(b)
	}
	var chk [2]byte
	chk[0] = byte(sum)
	chk[1] = byte(sum >> 8)
	tail = append(tail, chk[:]...)

	bytesInDatagram := uint32(headerSize-4) + uint32(len(tail))
	binary.LittleEndian.PutUint32(header[0:4], bytesInDatagram)

	return append(header, tail...)
}

func TestReadClockRecord(t *testing.T) {
	body := make([]byte, 9)
	binary.LittleEndian.PutUint32(body[0:4], 20240115)
	binary.LittleEndian.PutUint32(body[4:8], 12345)
	body[8] = 1

	data := buildDatagram(t, byte(RecordTypeClock), 710, 20240115, 12345, 1, 100, body)

	s, err := NewEMXStream(bytes.NewReader(data))
	require.NoError(t, err)

	rec, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, RecordTypeClock, rec.Type)

	clock, ok := rec.Payload.(Clock)
	require.True(t, ok)
	assert.Equal(t, uint32(20240115), clock.Date)
	assert.Equal(t, uint32(12345), clock.TimeMS)
	assert.Equal(t, uint8(1), clock.PPS)

	_, err = s.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestByteOrderDetectionViaSwappedDate(t *testing.T) {
	body := make([]byte, 5)
	binary.LittleEndian.PutUint32(body[0:4], uint32(int32(150)))
	body[4] = 100

	data := buildDatagram(t, byte(RecordTypeHeight), 710, 20240115, 0, 1, 100, body)

	// Byte-swap the whole datagram to simulate a big-endian-origin file,
	// matching what emx_byte_order must detect and undo.
	swapped := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(swapped[0:4], binary.LittleEndian.Uint32(data[0:4]))
	binary.BigEndian.PutUint16(swapped[6:8], binary.LittleEndian.Uint16(data[6:8]))
	binary.BigEndian.PutUint32(swapped[8:12], binary.LittleEndian.Uint32(data[8:12]))
	binary.BigEndian.PutUint32(swapped[12:16], binary.LittleEndian.Uint32(data[12:16]))
	binary.BigEndian.PutUint16(swapped[16:18], binary.LittleEndian.Uint16(data[16:18]))
	binary.BigEndian.PutUint16(swapped[18:20], binary.LittleEndian.Uint16(data[18:20]))
	// Height field inside the body is a multi-byte int32 too.
	binary.BigEndian.PutUint32(swapped[20:24], binary.LittleEndian.Uint32(data[20:24]))
	// So is the 16-bit checksum in the last two bytes.
	n := len(data)
	binary.BigEndian.PutUint16(swapped[n-2:], binary.LittleEndian.Uint16(data[n-2:]))

	s, err := NewEMXStream(bytes.NewReader(swapped))
	require.NoError(t, err)

	rec, err := s.Read()
	require.NoError(t, err)
	assert.True(t, s.swapped)

	height, ok := rec.Payload.(Height)
	require.True(t, ok)
	assert.Equal(t, int32(150), height.HeightCM)
	assert.Equal(t, uint8(100), height.HeightType)
}

func TestChecksumMismatchIsDiscardedByDefault(t *testing.T) {
	body := make([]byte, 9)
	good := buildDatagram(t, byte(RecordTypeClock), 710, 20240115, 0, 1, 100, body)

	corrupt := append([]byte(nil), good...)
	corrupt[len(corrupt)-1] ^= 0xFF // flip a checksum byte

	following := buildDatagram(t, byte(RecordTypeClock), 710, 20240116, 0, 2, 100, body)

	s, err := NewEMXStream(bytes.NewReader(append(corrupt, following...)))
	require.NoError(t, err)

	rec, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, uint32(20240116), rec.Header.Date)
}

func TestChecksumMismatchReturnedWhenIgnored(t *testing.T) {
	body := make([]byte, 9)
	good := buildDatagram(t, byte(RecordTypeClock), 710, 20240115, 0, 1, 100, body)
	corrupt := append([]byte(nil), good...)
	corrupt[len(corrupt)-1] ^= 0xFF

	s, err := NewEMXStream(bytes.NewReader(corrupt), WithIgnoreChecksum(true))
	require.NoError(t, err)

	rec, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, RecordTypeClock, rec.Type)
}

func TestDirectoryRecordExemptFromValidation(t *testing.T) {
	body := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	// date is zero (forcing byte-order detection to fall back to the model
	// number) and time_ms is deliberately out of range: both must be
	// tolerated for the directory record type.
	data := buildDatagram(t, byte(RecordTypeDirectory), 710, 0, 99_999_999, 1, 100, body)

	s, err := NewEMXStream(bytes.NewReader(data))
	require.NoError(t, err)

	rec, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, RecordTypeDirectory, rec.Type)
}

func TestIgnoreWaterColumnSkipsBodyRead(t *testing.T) {
	wcBody := make([]byte, 28+6+10)
	binary.LittleEndian.PutUint16(wcBody[4:6], 1)  // tx_sectors
	binary.LittleEndian.PutUint16(wcBody[6:8], 1)  // num_beams
	binary.LittleEndian.PutUint16(wcBody[8:10], 1) // datagram_beams

	wc := buildDatagram(t, byte(RecordTypeWaterColumn), 710, 20240115, 0, 1, 100, wcBody)
	clockBody := make([]byte, 9)
	clock := buildDatagram(t, byte(RecordTypeClock), 710, 20240115, 0, 2, 100, clockBody)

	s, err := NewEMXStream(bytes.NewReader(append(wc, clock...)), WithIgnoreWaterColumn(true))
	require.NoError(t, err)

	// The water column record must be skipped transparently: the first
	// Read the caller observes is the clock record that follows it.
	rec, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, RecordTypeClock, rec.Type)

	_, err = s.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecodeXYZWithBeams(t *testing.T) {
	body := make([]byte, 20+20)
	binary.LittleEndian.PutUint16(body[8:10], 1) // num_beams
	binary.LittleEndian.PutUint32(body[4:8], math.Float32bits(12.5))
	beam := body[20:40]
	binary.LittleEndian.PutUint32(beam[0:4], math.Float32bits(100.25))

	data := buildDatagram(t, byte(RecordTypeXYZ), 710, 20240115, 0, 1, 100, body)

	s, err := NewEMXStream(bytes.NewReader(data))
	require.NoError(t, err)

	rec, err := s.Read()
	require.NoError(t, err)

	xyz, ok := rec.Payload.(XYZ)
	require.True(t, ok)
	require.Len(t, xyz.Beams, 1)
	assert.InDelta(t, 12.5, xyz.Info.TransducerDepthM, 0.001)
	assert.InDelta(t, 100.25, xyz.Beams[0].DepthM, 0.001)
}

func TestWaterColumnRXBeamCursor(t *testing.T) {
	body := make([]byte, 28+6+12)
	binary.LittleEndian.PutUint16(body[4:6], 1) // tx_sectors
	binary.LittleEndian.PutUint16(body[6:8], 1) // num_beams
	binary.LittleEndian.PutUint16(body[8:10], 1)
	rx := body[28+6:]
	binary.LittleEndian.PutUint16(rx[4:6], 2) // num_samples
	rx[10] = byte(int8(-5))
	rx[11] = byte(int8(5))

	wc, err := decodeWaterColumn(body[:28+6])
	require.NoError(t, err)
	wc.rxBody = rx

	beam, next, ok := wc.NextWaterColumnRXBeam(0)
	require.True(t, ok)
	assert.Equal(t, uint16(2), beam.NumSamples)
	assert.Equal(t, []int8{-5, 5}, beam.Amplitude)
	assert.Equal(t, len(rx), next)

	_, _, ok = wc.NextWaterColumnRXBeam(next)
	assert.False(t, ok)
}

func TestDatagramName(t *testing.T) {
	assert.Equal(t, "clock", DatagramName(RecordTypeClock))
	assert.Equal(t, "unknown", DatagramName(RecordType(0xFF)))
}

func TestIdentifyEMXRejectsBadStartByte(t *testing.T) {
	header := make([]byte, headerSize)
	header[4] = 0x00
	assert.False(t, IdentifyEMX(header))
}
