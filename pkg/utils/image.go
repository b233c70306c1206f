package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

var (
	// PixelOn and PixelOff are the colours used when exporting a frame.
	PixelOn  = color.Gray{Y: 0xFF}
	PixelOff = color.Gray{Y: 0x00}
)

// FrameImage renders a monochrome frame to an image, scaled up by scale
// using nearest neighbour sampling so that pixels stay crisp.
func FrameImage(width, height int, pixel func(x, y int) bool, scale int) image.Image {
	src := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if pixel(x, y) {
				src.SetGray(x, y, PixelOn)
			} else {
				src.SetGray(x, y, PixelOff)
			}
		}
	}

	if scale <= 1 {
		return src
	}

	dst := image.NewGray(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SaveImage encodes img as a PNG at filename, appending the
// .png extension if it is missing.
func SaveImage(filename string, img image.Image) error {
	if filepath.Ext(filename) != ".png" {
		filename += ".png"
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", filename, err)
	}

	return file.Close()
}
