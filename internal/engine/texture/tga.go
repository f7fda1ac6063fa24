package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// tgaHeader is the fixed 18-byte TGA preamble, little-endian.
type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	texelSize   int  // bytes per texel, 3 or 4
	topToBottom bool // descriptor bit 5; rows store top-first when set
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("TGA data too short")
	}

	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		topToBottom: data[17]&0x20 != 0,
	}

	if data[1] != 0 {
		return tgaHeader{}, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return tgaHeader{}, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", h.imageType)
	}
	switch bpp := int(data[16]); bpp {
	case 24, 32:
		h.texelSize = bpp / 8
	default:
		return tgaHeader{}, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}
	return h, nil
}

// texelAt reads one BGR(A) texel; 24-bit texels get full alpha.
func (h tgaHeader) texelAt(data []byte, i int) color.RGBA {
	c := color.RGBA{B: data[i], G: data[i+1], R: data[i+2], A: 255}
	if h.texelSize == 4 {
		c.A = data[i+3]
	}
	return c
}

// put stores linear texel n, flipping rows for bottom-to-top files.
func (h tgaHeader) put(img *image.RGBA, n int, c color.RGBA) {
	x := n % h.width
	y := n / h.width
	if !h.topToBottom {
		y = h.height - 1 - y
	}
	img.SetRGBA(x, y, c)
}

// DecodeTGA decodes a TGA image.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10)
// files, which are the formats the sky and surface maps ship in.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	texels := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	if h.imageType == TGATypeUncompressed {
		if err := h.decodeRaw(img, texels); err != nil {
			return nil, err
		}
		return img, nil
	}
	h.decodeRLE(img, texels)
	return img, nil
}

// decodeRaw reads width*height texels back to back.
func (h tgaHeader) decodeRaw(img *image.RGBA, texels []byte) error {
	count := h.width * h.height
	if len(texels) < count*h.texelSize {
		return fmt.Errorf("TGA pixel data truncated")
	}
	for n := 0; n < count; n++ {
		h.put(img, n, h.texelAt(texels, n*h.texelSize))
	}
	return nil
}

// decodeRLE expands run and raw packets. Truncated packet data ends the
// decode early, leaving the remaining texels zero.
func (h tgaHeader) decodeRLE(img *image.RGBA, texels []byte) {
	total := h.width * h.height
	n := 0
	i := 0

	for n < total && i < len(texels) {
		packet := texels[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one texel repeated count times.
			if i+h.texelSize > len(texels) {
				return
			}
			c := h.texelAt(texels, i)
			i += h.texelSize
			for ; count > 0 && n < total; count-- {
				h.put(img, n, c)
				n++
			}
			continue
		}

		// Raw packet: count literal texels.
		for ; count > 0 && n < total; count-- {
			if i+h.texelSize > len(texels) {
				return
			}
			h.put(img, n, h.texelAt(texels, i))
			i += h.texelSize
			n++
		}
	}
}

// ImageToRGBA converts any image.Image to *image.RGBA.
func ImageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			rgba.SetRGBA(x, y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}
	return rgba
}
