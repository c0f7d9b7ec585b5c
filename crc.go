package s3g

import "github.com/sigurn/crc8"

var crcTable = crc8.MakeTable(crc8.CRC8_MAXIM)

// crcByte computes the iButton/Dallas CRC-8 of data.
func crcByte(data []byte) byte {
	return crc8.Checksum(data, crcTable)
}
