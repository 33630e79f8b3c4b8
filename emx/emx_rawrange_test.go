package emx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/fathomsonar/dgram/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRawRange70(t *testing.T) {
	body := make([]byte, 4+8)
	body[0] = 1 // max_beams
	body[1] = 1 // num_beams
	binary.LittleEndian.PutUint16(body[2:4], 1500)
	beam := body[4:12]
	binary.LittleEndian.PutUint16(beam[0:2], uint16(int16(-300)))
	beam[6] = byte(int8(-20))
	beam[7] = 3

	rr, err := decodeRawRange70(body)
	require.NoError(t, err)
	require.Len(t, rr.Beams, 1)
	assert.Equal(t, uint16(1500), rr.Info.SoundSpeedDMPS)
	assert.Equal(t, int16(-300), rr.Beams[0].BeamAngle)
	assert.Equal(t, uint8(3), rr.Beams[0].BeamNumber)
}

func TestDecodeRawRange78(t *testing.T) {
	body := make([]byte, 16+24+16)
	binary.LittleEndian.PutUint16(body[2:4], 1) // tx_sectors
	binary.LittleEndian.PutUint16(body[4:6], 1) // num_beams

	tx := body[16 : 16+24]
	binary.LittleEndian.PutUint32(tx[4:8], math.Float32bits(0.001)) // signal_length
	tx[19] = 2                                                      // tx_sector

	rx := body[40:56]
	binary.LittleEndian.PutUint32(rx[8:12], math.Float32bits(0.25)) // two_way_travel_time
	rx[2] = 2                                                       // tx_sector_number

	rr, err := decodeRawRange78(body)
	require.NoError(t, err)
	require.Len(t, rr.TXBeams, 1)
	require.Len(t, rr.RXBeams, 1)
	assert.InDelta(t, 0.001, rr.TXBeams[0].SignalLengthSec, 1e-6)
	assert.Equal(t, uint8(2), rr.TXBeams[0].TXSector)
	assert.InDelta(t, 0.25, rr.RXBeams[0].TwoWayTravelTimeSec, 1e-6)
	assert.Equal(t, uint8(2), rr.RXBeams[0].TXSectorNumber)
}

func TestRawRange78TooManySectorsRejected(t *testing.T) {
	body := make([]byte, 16)
	binary.LittleEndian.PutUint16(body[2:4], 21) // tx_sectors, one past the limit

	_, err := decodeRawRange78(body)
	assert.ErrorIs(t, err, errs.ErrTooManySectors)
}

func TestRawRange101TooManySectorsRejected(t *testing.T) {
	body := make([]byte, 30)
	binary.LittleEndian.PutUint16(body[26:28], 21) // tx_sectors

	_, err := decodeRawRange101(body)
	assert.ErrorIs(t, err, errs.ErrTooManySectors)
}

func TestRawRange102TooManySectorsRejected(t *testing.T) {
	body := make([]byte, 20)
	binary.LittleEndian.PutUint16(body[0:2], 21) // tx_sectors

	_, err := decodeRawRange102(body)
	assert.ErrorIs(t, err, errs.ErrTooManySectors)
}

func TestWaterColumnTooManySectorsRejected(t *testing.T) {
	body := make([]byte, 28)
	binary.LittleEndian.PutUint16(body[4:6], 21) // tx_sectors

	_, err := decodeWaterColumn(body)
	assert.ErrorIs(t, err, errs.ErrTooManySectors)
}
