package emx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/fathomsonar/dgram/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidescanStatusCachesBytesPerSample(t *testing.T) {
	const infoSize = 256
	const channelSize = 128
	body := make([]byte, infoSize+channelSize)
	binary.LittleEndian.PutUint16(body[166:168], 1) // num_channels

	ch := body[infoSize : infoSize+channelSize]
	binary.LittleEndian.PutUint16(ch[6:8], 4) // bytes_per_sample
	copy(ch[12:28], "CH0")

	var cal [6]uint16
	status, err := decodeSidescanStatus(body, &cal)
	require.NoError(t, err)
	require.Len(t, status.Channels, 1)
	assert.Equal(t, uint16(4), status.Channels[0].BytesPerSample)
	assert.Equal(t, "CH0", status.Channels[0].ChannelName)
	assert.Equal(t, uint16(4), cal[0])
}

func TestSidescanStatusRejectsBadSampleWidth(t *testing.T) {
	const infoSize = 256
	const channelSize = 128
	body := make([]byte, infoSize+channelSize)
	binary.LittleEndian.PutUint16(body[166:168], 1) // num_channels
	binary.LittleEndian.PutUint16(body[infoSize+6:infoSize+8], 3) // invalid width

	var cal [6]uint16
	_, err := decodeSidescanStatus(body, &cal)
	assert.ErrorIs(t, err, errs.ErrBadData)
}

func TestSidescanDataMissingCalibrationRejected(t *testing.T) {
	const infoSize = 256
	body := make([]byte, infoSize+64)
	binary.LittleEndian.PutUint16(body[4:6], 1) // num_channels

	var cal [6]uint16 // no prior status record, all zero
	_, err := decodeSidescanData(body, &cal)
	assert.ErrorIs(t, err, errs.ErrMissingSidescanCal)
}

func TestSidescanDataUsesCachedSampleWidth(t *testing.T) {
	const infoSize = 256
	const channelInfoSize = 64
	body := make([]byte, infoSize+channelInfoSize+8)
	binary.LittleEndian.PutUint16(body[4:6], 1) // num_channels

	ch := body[infoSize : infoSize+channelInfoSize]
	binary.LittleEndian.PutUint16(ch[42:44], 2) // num_samples

	samples := body[infoSize+channelInfoSize:]
	binary.LittleEndian.PutUint32(samples[0:4], math.Float32bits(1.5))
	binary.LittleEndian.PutUint32(samples[4:8], math.Float32bits(-2.5))

	cal := [6]uint16{4} // established by a prior sidescan-status record
	data, err := decodeSidescanData(body, &cal)
	require.NoError(t, err)
	require.Len(t, data.Channels, 1)
	require.Len(t, data.Channels[0].SamplesF32, 2)
	assert.InDelta(t, 1.5, data.Channels[0].SamplesF32[0], 1e-6)
	assert.InDelta(t, -2.5, data.Channels[0].SamplesF32[1], 1e-6)
}
