package kma

// decodePayload dispatches a record's body to its typed decoder. Record
// types with no case here (notably #FCF, added in Rev G for calibration
// file transfer, and #SHA, removed in Format Rev. C) are intentionally
// left as raw-passthrough: Raw still carries their bytes, but Payload is
// nil, the same documented scope limit emx applies to its own long tail
// of undecoded record types.
func decodePayload(t RecordType, dgmVersion uint8, body []byte) (any, error) {
	switch t {
	case RecordTypeIIP:
		return decodeIIP(body)
	case RecordTypeIOP:
		return decodeIOP(body)
	case RecordTypeIBE, RecordTypeIBR, RecordTypeIBS:
		return decodeBIST(body)
	case RecordTypeMRZ:
		return decodeMRZ(body, dgmVersion)
	case RecordTypeMWC:
		return decodeMWC(body)
	case RecordTypeSPO:
		return decodeSPO(body)
	case RecordTypeCPO:
		return decodeCPO(body)
	case RecordTypeSCL:
		return decodeSCL(body)
	case RecordTypeSDE:
		return decodeSDE(body, dgmVersion)
	case RecordTypeSHI:
		return decodeSHI(body)
	case RecordTypeCHE:
		return decodeCHE(body)
	case RecordTypeSVP:
		return decodeSVP(body)
	case RecordTypeSVT:
		return decodeSVT(body)
	case RecordTypeSKM:
		return decodeSKM(body)
	default:
		return nil, nil
	}
}
