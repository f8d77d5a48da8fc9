package tarball

import (
	"strconv"
	"time"
)

// BlockSize is the fixed size of every tar header and content block.
const BlockSize = 512

// Classic tar header field offsets. Only the fields Unity's importer looks
// at are populated; everything past the type flag stays zero.
const (
	nameField     = 0   // 100 bytes, NUL-terminated
	modeField     = 100 // 8 bytes, octal
	uidField      = 108 // 8 bytes, octal placeholder
	gidField      = 116 // 8 bytes, octal placeholder
	sizeField     = 124 // 12 bytes, octal
	mtimeField    = 136 // 12 bytes, octal
	checksumField = 148 // 8 bytes: six octal digits, NUL, space
	typeField     = 156 // 1 byte: '0' file, '5' directory

	// maxNameLength is the usable width of the name field. Longer names
	// are truncated, matching the legacy package layout.
	maxNameLength = 99
)

const (
	typeFlagFile = '0'
	typeFlagDir  = '5'

	// Entry modes are fixed constants, independent of source permissions.
	modeDir  = 0o755
	modeFile = 0o644
)

// EncodeEntry produces the 512-byte header block for one entry, followed by
// its content zero-padded to the next block boundary. Directories and empty
// files produce a lone header block.
func EncodeEntry(name string, content []byte, isDir bool) []byte {
	header := make([]byte, BlockSize)

	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}

	copy(header[nameField:], name)

	mode := int64(modeFile)
	typeFlag := byte(typeFlagFile)

	if isDir {
		mode = modeDir
		typeFlag = typeFlagDir
	}

	putOctal(header[modeField:modeField+8], mode)
	putOctal(header[uidField:uidField+8], 0)
	putOctal(header[gidField:gidField+8], 0)
	putOctal(header[sizeField:sizeField+12], int64(len(content)))
	putOctal(header[mtimeField:mtimeField+12], time.Now().Unix())
	header[typeField] = typeFlag

	writeChecksum(header)

	if len(content) == 0 {
		return header
	}

	paddedLength := (len(content) + BlockSize - 1) / BlockSize * BlockSize
	blocks := make([]byte, BlockSize+paddedLength)
	copy(blocks, header)
	copy(blocks[BlockSize:], content)

	return blocks
}

// putOctal fills field with value as a zero-padded ASCII octal string
// terminated by a NUL.
func putOctal(field []byte, value int64) {
	digits := strconv.FormatInt(value, 8)
	width := len(field) - 1

	for i := 0; i < width-len(digits); i++ {
		field[i] = '0'
	}

	copy(field[width-len(digits):width], digits)
	field[width] = 0
}

// writeChecksum fills the checksum field of a header block: the unsigned
// byte sum of all 512 bytes with the checksum field itself counted as eight
// ASCII spaces, stored as six zero-padded octal digits, a NUL and a space.
func writeChecksum(header []byte) {
	for i := checksumField; i < checksumField+8; i++ {
		header[i] = ' '
	}

	var sum int64
	for _, b := range header {
		sum += int64(b)
	}

	field := header[checksumField : checksumField+8]
	digits := strconv.FormatInt(sum, 8)

	for i := 0; i < 6-len(digits); i++ {
		field[i] = '0'
	}

	copy(field[6-len(digits):6], digits)
	field[6] = 0
	field[7] = ' '
}
