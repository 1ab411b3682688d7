// 包 batch 提供按行处理请求文件的离线批处理模式
package batch

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/pkg/logger"
)

const (
	initialLineBuffer = 64 * 1024
	maxLineBuffer     = 64 * 1024 * 1024
)

// Processor 逐行读取 JSONL 请求文件，每行独立解码、定价，
// 并按输入顺序向输出写出一行紧凑 JSON 结果。
// 任何一行解码或定价失败都会中止整个运行，不保留部分输出。
type Processor struct {
	app *application.PricingService
}

// NewProcessor 创建批处理器。
func NewProcessor(app *application.PricingService) *Processor {
	return &Processor{app: app}
}

// ProcessFile 处理请求文件，.gz 后缀的文件透明解压。
func (p *Processor) ProcessFile(ctx context.Context, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("gzip %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	return p.Process(ctx, reader, out)
}

// Process 处理一个请求流，每行一个独立编码的请求记录。
func (p *Processor) Process(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineBuffer)

	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var req application.PricingRequest
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return fmt.Errorf("line %d: decode request: %w", line, err)
		}
		if logger.DebugEnabled() {
			slog.DebugContext(ctx, "decoded request line",
				"line", line, "requests", len(req.AmericanOptionRequest))
		}

		resp, err := p.app.CalcPrices(ctx, &req)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		encoded, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("line %d: encode response: %w", line, err)
		}
		if _, err := fmt.Fprintln(out, string(encoded)); err != nil {
			return fmt.Errorf("line %d: write response: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
