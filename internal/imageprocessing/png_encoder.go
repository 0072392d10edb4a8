package imageprocessing

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

const pngColorTypeRGBA = 6

// EncodePNG writes grid as an 8-bit RGBA PNG (color type 6, no filtering,
// no interlace). level is a zlib compression level from -1 to 9.
func EncodePNG(w io.Writer, grid *PixelGrid, level int) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	if grid.Width == 0 || grid.Height == 0 {
		return fmt.Errorf("cannot encode empty %dx%d image", grid.Width, grid.Height)
	}

	var buf bytes.Buffer
	buf.Write(pngSignature)

	writeChunk(&buf, "IHDR", func(data *bytes.Buffer) {
		binary.Write(data, binary.BigEndian, uint32(grid.Width))
		binary.Write(data, binary.BigEndian, uint32(grid.Height))
		data.WriteByte(8)                // Bit depth
		data.WriteByte(pngColorTypeRGBA) // Color type
		data.WriteByte(0)                // Compression method
		data.WriteByte(0)                // Filter method
		data.WriteByte(0)                // Interlace method
	})

	compressed, err := zlibCompress(packRows(grid), level)
	if err != nil {
		return fmt.Errorf("failed to compress image data: %w", err)
	}
	writeChunk(&buf, "IDAT", func(data *bytes.Buffer) {
		data.Write(compressed)
	})

	writeChunk(&buf, "IEND", func(*bytes.Buffer) {})

	_, err = w.Write(buf.Bytes())
	return err
}

// packRows prefixes every row with filter type 0 (None).
func packRows(grid *PixelGrid) []byte {
	rowLen := grid.Width * bytesPerPixel
	data := make([]byte, 0, grid.Height*(rowLen+1))
	for y := 0; y < grid.Height; y++ {
		data = append(data, 0)
		data = append(data, grid.Pix[y*rowLen:(y+1)*rowLen]...)
	}
	return data
}

// writeChunk writes a PNG chunk with its length and CRC
func writeChunk(buf *bytes.Buffer, chunkType string, dataWriter func(*bytes.Buffer)) {
	var chunkData bytes.Buffer
	dataWriter(&chunkData)
	data := chunkData.Bytes()

	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(chunkType)
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)
	binary.Write(buf, binary.BigEndian, crc.Sum32())
}

func zlibCompress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	writer, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zlib writer: %w", err)
	}
	return buf.Bytes(), nil
}
