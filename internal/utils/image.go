package utils

import (
	"image"
	"image/png"
	"os"
)

// SaveImage writes img as PNG to the given path.
func SaveImage(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
