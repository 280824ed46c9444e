package scanning

import (
	"image"
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// grayAt returns the luminance of a pixel
func grayAt(img image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

var _ = Describe("Preprocess", func() {
	var (
		src image.Image
		out image.Image
	)

	JustBeforeEach(func() {
		out = Preprocess(src)
	})

	When("the image is small", func() {
		BeforeEach(func() {
			// white paper on the left, dark ink on the right
			img := image.NewRGBA(image.Rect(0, 0, 100, 40))
			for y := 0; y < 40; y++ {
				for x := 0; x < 100; x++ {
					if x < 50 {
						img.Set(x, y, color.White)
					} else {
						img.Set(x, y, color.RGBA{R: 20, G: 20, B: 20, A: 255})
					}
				}
			}
			src = img
		})

		It("upscales it", func() {
			Expect(out.Bounds().Dy()).To(Equal(upscaleHeight))
			Expect(out.Bounds().Dx()).To(Equal(3000))
		})

		It("turns bright paper black", func() {
			Expect(grayAt(out, 500, 600)).To(BeNumerically("<", 10))
		})

		It("turns dark ink white", func() {
			Expect(grayAt(out, 2500, 600)).To(BeNumerically(">", 245))
		})
	})

	When("the image is already large", func() {
		BeforeEach(func() {
			src = image.NewRGBA(image.Rect(0, 0, 300, 900))
		})

		It("keeps the size", func() {
			Expect(out.Bounds().Dx()).To(Equal(300))
			Expect(out.Bounds().Dy()).To(Equal(900))
		})
	})
})
