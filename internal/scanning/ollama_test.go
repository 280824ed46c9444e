package scanning

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Ollama", func() {
	var (
		server    *ghttp.Server
		ollama    *Ollama
		imageData []byte
		received  ollamaChatRequest
		text      string
		err       error
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		imageData = encodeTestPNG(8, 8)
		received = ollamaChatRequest{}

		var newErr error
		ollama, newErr = NewOllama(server.URL()+"/", "llava", false)
		Expect(newErr).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	JustBeforeEach(func() {
		text, err = ollama.ExtractText(context.Background(), imageData, "image/png")
	})

	captureRequest := func(w http.ResponseWriter, r *http.Request) {
		defer GinkgoRecover()
		Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())
	}

	When("the model answers", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/api/chat"),
				ghttp.VerifyContentType("application/json"),
				captureRequest,
				ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
					"message": map[string]any{"role": "assistant", "content": "```\nTotal: $45.67\n```"},
					"done":    true,
				}),
			))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the cleaned transcription", func() {
			Expect(text).To(Equal("Total: $45.67"))
		})

		It("asks the configured model without streaming", func() {
			Expect(received.Model).To(Equal("llava"))
			Expect(received.Stream).To(BeFalse())
		})

		It("sends the image in the user message", func() {
			Expect(received.Messages).To(HaveLen(2))
			user := received.Messages[1]
			Expect(user.Role).To(Equal("user"))
			Expect(user.Content).To(Equal(transcriptionPrompt))
			Expect(user.Images).To(ConsistOf(base64.StdEncoding.EncodeToString(imageData)))
		})
	})

	When("the API fails", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, "model not loaded"))
		})

		It("returns an OCR error", func() {
			var ocrErr *OCRError
			Expect(errors.As(err, &ocrErr)).To(BeTrue())
			Expect(ocrErr.Engine).To(Equal(EngineOllama))
			Expect(err.Error()).To(ContainSubstring("model not loaded"))
		})
	})

	When("the model returns nothing", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
				"message": map[string]any{"role": "assistant", "content": "  "},
				"done":    true,
			}))
		})

		It("returns an OCR error", func() {
			var ocrErr *OCRError
			Expect(errors.As(err, &ocrErr)).To(BeTrue())
			Expect(errors.Is(err, errEmptyTranscript)).To(BeTrue())
		})
	})

	When("the image cannot be decoded", func() {
		BeforeEach(func() {
			imageData = []byte("not an image")
		})

		It("never calls the API", func() {
			Expect(server.ReceivedRequests()).To(BeEmpty())
		})

		It("returns an image processing error", func() {
			var procErr *ImageProcessingError
			Expect(errors.As(err, &procErr)).To(BeTrue())
		})
	})
})
