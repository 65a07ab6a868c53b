package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/cahaseler/cc-track/internal/domain"
)

// FailedChunkMarker replaces the summary of a chunk whose compression failed.
const FailedChunkMarker = "[chunk omitted: compression failed]"

// Compressor summarizes diff chunks through the summarization oracle with
// bounded concurrency.
// Fields are ordered to minimize memory padding.
type Compressor struct {
	summarizer domain.Summarizer
	logger     domain.Logger
	inFlight   *atomic.Int32
	peak       *atomic.Int32
	runID      string
	cfg        domain.CompressionConfig
}

// NewCompressor creates a Compressor.
func NewCompressor(summarizer domain.Summarizer, cfg domain.CompressionConfig, logger domain.Logger, runID string) *Compressor {
	return &Compressor{
		summarizer: summarizer,
		cfg:        cfg,
		logger:     logger,
		runID:      runID,
		inFlight:   atomic.NewInt32(0),
		peak:       atomic.NewInt32(0),
	}
}

// PeakInFlight returns the highest number of concurrent summarize calls observed.
func (c *Compressor) PeakInFlight() int {
	return int(c.peak.Load())
}

// Prepare turns a filtered diff into the text sent to classification.
// Diffs below the threshold, or any diff when compression is disabled, pass
// through raw (truncated to the raw size limit); larger ones are chunked and compressed.
func (c *Compressor) Prepare(ctx context.Context, diff string) domain.CompressedDiff {
	if !c.cfg.Enabled || len(diff) < c.cfg.ThresholdBytes {
		return c.rawFallback(diff, 0)
	}
	chunks := domain.ChunkDiff(diff, c.cfg.MaxChunkBytes)
	c.logger.Debug(c.runID, "compress", fmt.Sprintf("diff of %s split into %d chunks",
		humanize.Bytes(uint64(len(diff))), len(chunks)))
	return c.Compress(ctx, chunks)
}

// Compress summarizes chunks concurrently, at most cfg.Concurrency at a time,
// and reassembles the summaries in chunk order. Failed chunks contribute a
// marker and a raw prefix; if every chunk fails the truncated raw diff is returned.
// Chunks not started when ctx is done count as failed.
func (c *Compressor) Compress(ctx context.Context, chunks []domain.DiffChunk) domain.CompressedDiff {
	if len(chunks) == 0 {
		return domain.CompressedDiff{}
	}

	results := make([]domain.CompressionResult, len(chunks))
	failures := atomic.NewInt32(0)

	var g errgroup.Group
	g.SetLimit(max(c.cfg.Concurrency, 1))
	for i, chunk := range chunks {
		results[i] = domain.CompressionResult{ChunkID: chunk.ID}
		if ctx.Err() != nil {
			failures.Inc()
			continue
		}
		i, chunk := i, chunk
		g.Go(func() error {
			summary, err := c.summarizeChunk(ctx, chunk)
			if err != nil {
				failures.Inc()
				c.logger.Warn(c.runID, "compress", fmt.Sprintf("%s failed: %v", chunk.Label(), err))
				return nil
			}
			results[i] = domain.CompressionResult{ChunkID: chunk.ID, SummaryText: summary, Succeeded: true}
			return nil
		})
	}
	_ = g.Wait()

	var raw strings.Builder
	for _, chunk := range chunks {
		raw.WriteString(chunk.RawText)
	}

	failed := int(failures.Load())
	if failed == len(chunks) {
		c.logger.Warn(c.runID, "compress", fmt.Sprintf("all %d chunks failed; falling back to raw diff", failed))
		return c.rawFallback(raw.String(), len(chunks))
	}

	text := c.assemble(chunks, results)
	out := domain.CompressedDiff{
		Text:         text,
		Ratio:        ratio(len(text), raw.Len()),
		TotalChunks:  len(chunks),
		FailedChunks: failed,
		Compressed:   true,
	}
	c.logger.Info(c.runID, "compress", fmt.Sprintf("compressed %d chunks (%d failed): %s -> %s (%.1f%%), peak concurrency %d",
		len(chunks), failed, humanize.Bytes(uint64(raw.Len())), humanize.Bytes(uint64(len(text))),
		out.Ratio*100, c.PeakInFlight()))
	return out
}

// summarizeChunk sends one chunk to the oracle under the per-chunk timeout.
func (c *Compressor) summarizeChunk(ctx context.Context, chunk domain.DiffChunk) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n := c.inFlight.Inc()
	defer c.inFlight.Dec()
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CAS(p, n) {
			break
		}
	}

	text := chunk.RawText
	if chunk.Oversized {
		text = domain.TruncateWithNotice(text, c.cfg.MaxChunkBytes)
	}
	prompt := domain.BuildSummarizePrompt(chunk, text)

	summary, err := callOracle(ctx, c.cfg.ChunkTimeout(), func(cctx context.Context) (string, error) {
		return c.summarizer.Summarize(cctx, prompt)
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(summary) == "" {
		return "", errors.Join(domain.ErrOracleFailed, domain.ErrEmptyResponse)
	}
	return strings.TrimSpace(summary), nil
}

// assemble joins per-chunk sections in chunk order.
func (c *Compressor) assemble(chunks []domain.DiffChunk, results []domain.CompressionResult) string {
	var b strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "### %s\n", chunk.Label())
		if results[i].Succeeded {
			b.WriteString(results[i].SummaryText)
			b.WriteString("\n")
			continue
		}
		b.WriteString(FailedChunkMarker)
		b.WriteString("\n")
		if prefix, _ := domain.TruncateText(chunk.RawText, c.cfg.FailedChunkPrefixBytes); prefix != "" {
			b.WriteString(prefix)
			if !strings.HasSuffix(prefix, "\n") {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// rawFallback returns diff cut to the raw size limit, uncompressed.
func (c *Compressor) rawFallback(diff string, chunks int) domain.CompressedDiff {
	text := diff
	truncated := false
	if c.cfg.MaxRawBytes > 0 && len(diff) > c.cfg.MaxRawBytes {
		text = domain.TruncateWithNotice(diff, c.cfg.MaxRawBytes)
		truncated = true
	}
	return domain.CompressedDiff{
		Text:         text,
		Ratio:        ratio(len(text), len(diff)),
		TotalChunks:  chunks,
		FailedChunks: chunks,
		Truncated:    truncated,
	}
}

func ratio(compressed, original int) float64 {
	if original == 0 {
		return 1
	}
	return float64(compressed) / float64(original)
}
