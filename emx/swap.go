package emx

// swapBody reverses the multi-byte numeric fields of a record body in place
// when the stream was detected as byte-swapped, so that decodePayload can
// always assume little-endian layout. Single-byte fields never need
// swapping. Record types with no case here are left untouched: their raw
// bytes still reach the caller via EMXRecord.Raw, but no typed payload is
// produced for them, so there is nothing to swap incorrectly.
//
// The documented exceptions from the source carry over unchanged: HISAS
// status, navigation output, sidescan status/data, and raw-range-123
// payloads are never swapped, by design of the original format.
func swapBody(t RecordType, body []byte) {
	switch t {
	case RecordTypeHISASStatus, RecordTypeNavigationOutput, RecordTypeSidescanStatus,
		RecordTypeHISAS1032Sidescan, RecordTypeRRA123:
		return
	}

	switch t {
	case RecordTypeClock:
		swap32At(body, 0) // date
		swap32At(body, 4) // time_ms
	case RecordTypeHeight:
		swap32At(body, 0) // height
	case RecordTypeHeading:
		if len(body) < 2 {
			return
		}
		swap16At(body, 0) // num_entries
		n := int(body[0]) | int(body[1])<<8
		off := 2
		for i := 0; i < n && off+4 <= len(body); i++ {
			swap16At(body, off)
			swap16At(body, off+2)
			off += 4
		}
	case RecordTypePosition:
		if len(body) < 18 {
			return
		}
		swap32At(body, 0)
		swap32At(body, 4)
		swap16At(body, 8)
		swap16At(body, 10)
		swap16At(body, 12)
		swap16At(body, 14)
	case RecordTypeSingleBeamDepth:
		swap32At(body, 0)
		swap32At(body, 4)
		swap32At(body, 8)
	case RecordTypeTide:
		swap32At(body, 0)
		swap32At(body, 4)
		swap16At(body, 8)
	case RecordTypeSSSV:
		if len(body) < 2 {
			return
		}
		swap16At(body, 0)
		n := int(body[0]) | int(body[1])<<8
		off := 2
		for i := 0; i < n && off+4 <= len(body); i++ {
			swap16At(body, off)
			swap16At(body, off+2)
			off += 4
		}
	case RecordTypeDepth:
		swapDepthBody(body)
	case RecordTypeXYZ:
		swapXYZBody(body)
	case RecordTypeAttitude:
		swapAttitudeBody(body)
	case RecordTypeAttitudeNetwork:
		swapAttitudeNetworkBody(body)
	case RecordTypeQualityFactor:
		swapQualityFactorBody(body)
	case RecordTypeWaterColumn:
		swapWaterColumnBody(body)
	}
}

func swap16At(b []byte, off int) {
	b[off], b[off+1] = b[off+1], b[off]
}

func swap32At(b []byte, off int) {
	b[off], b[off+1], b[off+2], b[off+3] = b[off+3], b[off+2], b[off+1], b[off]
}

func swapDepthBody(body []byte) {
	if len(body) < 12 {
		return
	}
	swap16At(body, 0)
	swap16At(body, 2)
	swap16At(body, 4)
	swap16At(body, 10)
	numBeams := int(body[7])
	off := 12
	for i := 0; i < numBeams && off+16 <= len(body); i++ {
		swap16At(body, off)
		swap16At(body, off+2)
		swap16At(body, off+4)
		swap16At(body, off+6)
		swap16At(body, off+8)
		swap16At(body, off+10)
		off += 16
	}
}

func swapXYZBody(body []byte) {
	if len(body) < 20 {
		return
	}
	swap16At(body, 0)
	swap16At(body, 2)
	swap32At(body, 4)
	swap16At(body, 8)
	swap16At(body, 10)
	swap32At(body, 12)
	numBeams := int(body[8]) | int(body[9])<<8
	off := 20
	for i := 0; i < numBeams && off+20 <= len(body); i++ {
		swap32At(body, off)
		swap32At(body, off+4)
		swap32At(body, off+8)
		swap16At(body, off+12)
		swap16At(body, off+18)
		off += 20
	}
}

func swapAttitudeBody(body []byte) {
	if len(body) < 2 {
		return
	}
	swap16At(body, 0)
	n := int(body[0]) | int(body[1])<<8
	off := 2
	for i := 0; i < n && off+12 <= len(body); i++ {
		swap16At(body, off)
		swap16At(body, off+2)
		swap16At(body, off+4)
		swap16At(body, off+6)
		swap16At(body, off+8)
		swap16At(body, off+10)
		off += 12
	}
}

func swapAttitudeNetworkBody(body []byte) {
	if len(body) < 4 {
		return
	}
	swap16At(body, 0)
	off := 4
	for off+11 <= len(body) {
		swap16At(body, off)
		swap16At(body, off+2)
		swap16At(body, off+4)
		swap16At(body, off+6)
		swap16At(body, off+8)
		n := int(body[off+10])
		off += 11 + n
	}
}

func swapQualityFactorBody(body []byte) {
	if len(body) < 4 {
		return
	}
	swap16At(body, 0)
	numBeams := int(body[0]) | int(body[1])<<8
	off := 4
	for i := 0; i < numBeams && off+4 <= len(body); i++ {
		swap32At(body, off)
		off += 4
	}
}

func swapWaterColumnBody(body []byte) {
	if len(body) < 28 {
		return
	}
	swap16At(body, 0)
	swap16At(body, 2)
	swap16At(body, 4)
	swap16At(body, 6)
	swap16At(body, 8)
	swap16At(body, 10)
	swap32At(body, 12)
	swap16At(body, 16)
	txSectors := int(body[4]) | int(body[5])<<8
	numBeams := int(body[8]) | int(body[9])<<8
	off := 28
	for i := 0; i < txSectors && off+6 <= len(body); i++ {
		swap16At(body, off)
		swap16At(body, off+2)
		off += 6
	}
	for i := 0; i < numBeams && off+10 <= len(body); i++ {
		swap16At(body, off)
		swap16At(body, off+2)
		swap16At(body, off+4)
		swap16At(body, off+6)
		numSamples := int(body[off+4]) | int(body[off+5])<<8
		off += 10 + numSamples
	}
}
