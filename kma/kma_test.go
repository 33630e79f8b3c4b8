package kma

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/fathomsonar/dgram/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildKMADatagram assembles a full little-endian KMA datagram: 20-byte
// header, body, and the trailing duplicate length field. body must NOT
// include the trailer; it is appended and sized automatically.
func buildKMADatagram(t *testing.T, dgmType uint32, version uint8, timeSec, timeNanosec uint32, body []byte) []byte {
	t.Helper()

	total := headerSize + len(body) + trailerSize

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], uint32(total))
	binary.LittleEndian.PutUint32(header[4:8], dgmType)
	header[8] = version
	header[9] = 1 // systemID
	binary.LittleEndian.PutUint16(header[10:12], 40111)
	binary.LittleEndian.PutUint32(header[12:16], timeSec)
	binary.LittleEndian.PutUint32(header[16:20], timeNanosec)

	trailer := make([]byte, trailerSize)
	binary.LittleEndian.PutUint32(trailer, uint32(total))

	out := append(append([]byte{}, header...), body...)
	return append(out, trailer...)
}

// scommonBlock builds a minimal S-common sub-block: a 2-byte declared
// length (counting itself) followed by sensorSystem/sensorStatus.
func scommonBlock() []byte {
	b := make([]byte, 6)
	binary.LittleEndian.PutUint16(b[0:2], 6)
	binary.LittleEndian.PutUint16(b[2:4], 1)
	binary.LittleEndian.PutUint16(b[4:6], 0)
	return b
}

func TestReadClockRecord(t *testing.T) {
	body := append(append([]byte{}, scommonBlock()...), make([]byte, 8)...)
	binary.LittleEndian.PutUint32(body[10:14], 1) // clock dev, just nonzero marker after offsetSec

	data := buildKMADatagram(t, uint32(RecordTypeSCL), 0, 20240115, 0, body)

	s, err := NewKMAStream(bytes.NewReader(data))
	require.NoError(t, err)

	rec, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, RecordTypeSCL, rec.Type)

	clock, ok := rec.Payload.(Clock)
	require.True(t, ok)
	assert.Equal(t, uint16(1), clock.Common.SensorSystem)

	_, err = s.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTrailerMismatchRejected(t *testing.T) {
	body := append(append([]byte{}, scommonBlock()...), make([]byte, 8)...)
	data := buildKMADatagram(t, uint32(RecordTypeSCL), 0, 20240115, 0, body)

	// Corrupt the trailing duplicate length field so it no longer matches
	// the header's NumBytesDgm.
	data[len(data)-1] ^= 0xFF

	s, err := NewKMAStream(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = s.Read()
	assert.Error(t, err)
}

func TestMRZPartitionNotSingleRejected(t *testing.T) {
	body := make([]byte, 4)
	binary.LittleEndian.PutUint16(body[0:2], 2) // numOfDgms
	binary.LittleEndian.PutUint16(body[2:4], 1) // dgmNum

	data := buildKMADatagram(t, uint32(RecordTypeMRZ), 0, 20240115, 0, body)

	s, err := NewKMAStream(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = s.Read()
	assert.ErrorIs(t, err, errs.ErrPartitionNotSingle)
}

func TestIgnoreWaterColumnSkipsBodyRead(t *testing.T) {
	wcBody := make([]byte, 4+6+10)
	binary.LittleEndian.PutUint16(wcBody[0:2], 1) // partition.numOfDgms
	binary.LittleEndian.PutUint16(wcBody[2:4], 1) // partition.dgmNum
	binary.LittleEndian.PutUint16(wcBody[4:6], 6) // common block declared length

	wc := buildKMADatagram(t, uint32(RecordTypeMWC), 0, 20240115, 0, wcBody)

	sclBody := append(append([]byte{}, scommonBlock()...), make([]byte, 8)...)
	scl := buildKMADatagram(t, uint32(RecordTypeSCL), 0, 20240115, 0, sclBody)

	s, err := NewKMAStream(bytes.NewReader(append(wc, scl...)), WithIgnoreWaterColumn(true))
	require.NoError(t, err)

	// The water column record must be skipped transparently: the first
	// Read the caller observes is the clock record that follows it.
	rec, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, RecordTypeSCL, rec.Type)

	_, err = s.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSDEVersionSelect(t *testing.T) {
	v0Body := append(append([]byte{}, scommonBlock()...), make([]byte, 28)...)
	v0Data := buildKMADatagram(t, uint32(RecordTypeSDE), 0, 20240115, 0, v0Body)

	s, err := NewKMAStream(bytes.NewReader(v0Data))
	require.NoError(t, err)
	rec, err := s.Read()
	require.NoError(t, err)
	depth, ok := rec.Payload.(Depth)
	require.True(t, ok)
	assert.NotNil(t, depth.V0)
	assert.Nil(t, depth.V1)

	v1Body := append(append([]byte{}, scommonBlock()...), make([]byte, 32)...)
	v1Data := buildKMADatagram(t, uint32(RecordTypeSDE), 1, 20240115, 0, v1Body)

	s, err = NewKMAStream(bytes.NewReader(v1Data))
	require.NoError(t, err)
	rec, err = s.Read()
	require.NoError(t, err)
	depth, ok = rec.Payload.(Depth)
	require.True(t, ok)
	assert.Nil(t, depth.V0)
	assert.NotNil(t, depth.V1)
}

func TestNextWaterColumnRXBeamKMAPhaseVariants(t *testing.T) {
	entrySize := 12
	numSamples := uint16(2)

	header := make([]byte, entrySize)
	binary.LittleEndian.PutUint16(header[10:12], numSamples)

	amplitude := []byte{0xFB, 0x05} // -5, 5 as int8
	low := []byte{0x01, 0x02}
	high := make([]byte, 4)
	binary.LittleEndian.PutUint16(high[0:2], uint16(int16(-7)))
	binary.LittleEndian.PutUint16(high[2:4], uint16(int16(7)))

	t.Run("off", func(t *testing.T) {
		cur := append(append([]byte{}, header...), amplitude...)
		beam, rest, ok, err := NextWaterColumnRXBeamKMA(cur, PhaseOff, entrySize)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []int8{-5, 5}, beam.Amplitude)
		assert.Empty(t, rest)
	})

	t.Run("low", func(t *testing.T) {
		cur := append(append(append([]byte{}, header...), amplitude...), low...)
		beam, rest, ok, err := NextWaterColumnRXBeamKMA(cur, PhaseLow, entrySize)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []int8{1, 2}, beam.PhaseLow)
		assert.Empty(t, rest)
	})

	t.Run("high", func(t *testing.T) {
		cur := append(append(append([]byte{}, header...), amplitude...), high...)
		beam, rest, ok, err := NextWaterColumnRXBeamKMA(cur, PhaseHigh, entrySize)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []int16{-7, 7}, beam.PhaseHigh)
		assert.Empty(t, rest)
	})

	t.Run("exhausted", func(t *testing.T) {
		_, _, ok, err := NextWaterColumnRXBeamKMA(nil, PhaseOff, entrySize)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDatagramName(t *testing.T) {
	assert.Equal(t, "raw-range-and-depth", DatagramName(RecordTypeMRZ))
	assert.Equal(t, "unknown", DatagramName(RecordType(0)))
}

func TestIdentifyKMARejectsMissingHashMark(t *testing.T) {
	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], minDatagram)
	binary.LittleEndian.PutUint32(header[4:8], 0x5A524D00) // low byte not '#'
	assert.False(t, IdentifyKMA(header))
}

func TestIdentifyKMAAcceptsValidHeader(t *testing.T) {
	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], minDatagram)
	binary.LittleEndian.PutUint32(header[4:8], uint32(RecordTypeSCL))
	assert.True(t, IdentifyKMA(header))
}
