//go:build ignore

package main

import (
	"fmt"

	"github.com/zhubert/toolazy/internal/clipboard"
)

func main() {
	fmt.Println("Testing clipboard read...")
	snap, err := clipboard.NewSystem().Read()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Clipboard holds: %s\n", snap.Kind)
	img := snap.Image()
	if img == nil {
		fmt.Println("No image in clipboard")
		return
	}
	fmt.Printf("Image found: %dx%d, format=%s, origin=%s\n", img.Width, img.Height, img.Format, img.Origin)
	fmt.Printf("Hash: %s\n", img.Hash())
}
