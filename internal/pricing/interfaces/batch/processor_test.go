package batch

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

const requestLine = `{"marketdata":{"reference_date":{"year":2021,"month":2,"day":5},` +
	`"rate_curves":[{"currency":"USD","rate_type":"RISK_FREE_CURVE",` +
	`"discounts":[{"date":{"year":2022,"month":2,"day":8},"value":{"units":0,"nanos":940000000}}]}],` +
	`"equity_options":[{"id":"GOOG","currency":"USD","spot_price":{"units":1500,"nanos":0},` +
	`"strike_dates":[{"year":2022,"month":2,"day":18},{"year":2022,"month":5,"day":21}],` +
	`"strike_prices":[{"units":1450,"nanos":0},{"units":1500,"nanos":0},{"units":1550,"nanos":0}],` +
	`"implied_vols":[{"units":0,"nanos":150000000},{"units":0,"nanos":150000000},{"units":0,"nanos":150000000},` +
	`{"units":0,"nanos":150000000},{"units":0,"nanos":150000000},{"units":0,"nanos":150000000}]}]},` +
	`"american_option_request":[{"equity":"GOOG","currency":"USD","strike":{"units":1500,"nanos":0},` +
	`"expiry_date":{"year":2022,"month":5,"day":21},"is_call_option":false,` +
	`"contract_amount":{"units":1,"nanos":0}}]}`

func newProcessor() *Processor {
	return NewProcessor(application.NewPricingService())
}

func TestProcessEmitsOneResponsePerLine(t *testing.T) {
	in := strings.NewReader(requestLine + "\n" + requestLine + "\n")
	var out bytes.Buffer

	require.NoError(t, newProcessor().Process(context.Background(), in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var resp application.PricingResponse
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		require.Len(t, resp.Value, 1)
		assert.Greater(t, resp.Value[0], 0.0)
	}
}

func TestProcessSkipsBlankLines(t *testing.T) {
	in := strings.NewReader("\n" + requestLine + "\n\n")
	var out bytes.Buffer

	require.NoError(t, newProcessor().Process(context.Background(), in, &out))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 1)
}

func TestProcessAbortsOnBadLine(t *testing.T) {
	bad := strings.Replace(requestLine, `"equity":"GOOG"`, `"equity":"MISSING"`, 1)
	in := strings.NewReader(requestLine + "\n" + bad + "\n" + requestLine + "\n")
	var out bytes.Buffer

	err := newProcessor().Process(context.Background(), in, &out)
	require.ErrorIs(t, err, domain.ErrUnknownUnderlying)
	assert.Contains(t, err.Error(), "line 2")
}

func TestProcessAbortsOnUndecodableLine(t *testing.T) {
	in := strings.NewReader("not json\n")
	var out bytes.Buffer

	err := newProcessor().Process(context.Background(), in, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestProcessFilePlainAndGzip(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "requests.jsonl")
	require.NoError(t, os.WriteFile(plain, []byte(requestLine+"\n"), 0o644))

	gzPath := filepath.Join(dir, "requests.jsonl.gz")
	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err := gw.Write([]byte(requestLine + "\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(gzPath, gzBuf.Bytes(), 0o644))

	for _, path := range []string{plain, gzPath} {
		var out bytes.Buffer
		require.NoError(t, newProcessor().ProcessFile(context.Background(), path, &out))

		var resp application.PricingResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
		require.Len(t, resp.Value, 1)
	}
}
