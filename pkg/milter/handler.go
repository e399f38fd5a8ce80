package milter

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/d--j/go-milter"

	"github.com/zpam/nbspam/pkg/config"
	"github.com/zpam/nbspam/pkg/corpus"
	"github.com/zpam/nbspam/pkg/learning"
)

// Handler classifies one SMTP message at a time with a shared, read-only
// classifier. go-milter creates a Handler per connection.
type Handler struct {
	milter.NoOpMilter
	config     config.MilterConfig
	classifier learning.Classifier

	// Message being assembled
	from    string
	subject string
	body    strings.Builder

	startTime time.Time
}

// NewHandler creates a new milter handler
func NewHandler(cfg config.MilterConfig, classifier learning.Classifier) *Handler {
	return &Handler{
		config:     cfg,
		classifier: classifier,
		startTime:  time.Now(),
	}
}

// MailFrom is called when MAIL FROM is received
func (h *Handler) MailFrom(from string, esmtpArgs string, m milter.Modifier) (*milter.Response, error) {
	h.reset()
	h.from = from
	return milter.RespContinue, nil
}

// Header is called for each header
func (h *Handler) Header(name string, value string, m milter.Modifier) (*milter.Response, error) {
	if strings.EqualFold(name, "subject") {
		h.subject = value
	}
	return milter.RespContinue, nil
}

// BodyChunk is called for each body chunk
func (h *Handler) BodyChunk(chunk []byte, m milter.Modifier) (*milter.Response, error) {
	h.body.Write(chunk)
	return milter.RespContinue, nil
}

// EndOfMessage classifies the body, stamps the verdict headers and decides
// whether the message goes on.
func (h *Handler) EndOfMessage(m milter.Modifier) (*milter.Response, error) {
	res, err := h.classify()
	if err != nil {
		return milter.RespTempFail, fmt.Errorf("failed to classify message: %w", err)
	}

	for _, hdr := range h.verdictHeaders(res) {
		if err := m.AddHeader(hdr[0], hdr[1]); err != nil {
			return milter.RespTempFail, fmt.Errorf("failed to add header %s: %w", hdr[0], err)
		}
	}

	slog.Info("message classified",
		"from", h.from,
		"subject", h.subject,
		"label", res.Label,
		"spam_score", res.SpamScore,
		"ham_score", res.HamScore,
		"elapsed", time.Since(h.startTime))

	return h.respond(res), nil
}

// Abort is called when the message is aborted
func (h *Handler) Abort(m milter.Modifier) error {
	h.reset()
	return nil
}

func (h *Handler) reset() {
	h.from = ""
	h.subject = ""
	h.body.Reset()
	h.startTime = time.Now()
}

// classify scores the message body the way test bodies are scored.
func (h *Handler) classify() (learning.Result, error) {
	return h.classifier.Classify(corpus.Normalize(h.body.String()))
}

// verdictHeaders lists the headers describing res, in the order they are added.
func (h *Handler) verdictHeaders(res learning.Result) [][2]string {
	prefix := h.config.HeaderPrefix
	return [][2]string{
		{prefix + "Status", string(res.Label)},
		{prefix + "Score-Spam", fmt.Sprintf("%.3f", res.SpamScore)},
		{prefix + "Score-Ham", fmt.Sprintf("%.3f", res.HamScore)},
		{prefix + "Features", fmt.Sprintf("%d", res.MatchedFeatures)},
	}
}

// respond decides the SMTP outcome for res.
func (h *Handler) respond(res learning.Result) *milter.Response {
	if res.Label != learning.Spam || !h.config.RejectSpam {
		return milter.RespContinue
	}

	message := h.config.RejectMessage
	if message == "" {
		message = fmt.Sprintf("5.7.1 Message rejected as spam (%.3f vs %.3f)", res.SpamScore, res.HamScore)
	}
	resp, err := milter.RejectWithCodeAndReason(550, message)
	if err != nil {
		slog.Warn("invalid reject message, rejecting without reason", "error", err)
		return milter.RespReject
	}
	return resp
}
