package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/qaops/testcase-gateway/internal/config"
	"github.com/qaops/testcase-gateway/internal/metrics"
	"github.com/qaops/testcase-gateway/internal/models"
)

// UpstreamStatusError reports a non-200 answer from the Excel generator.
// The upstream body is discarded; only the status code travels back.
type UpstreamStatusError struct {
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("excel upstream returned status %d", e.StatusCode)
}

// ExcelService forwards generated test-case text to the Excel generator
// and relays the produced spreadsheet bytes.
type ExcelService struct {
	logger  *log.Logger
	client  *http.Client
	baseURL string
}

func NewExcelService(logger *log.Logger, cfg config.ExcelConfig) (*ExcelService, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	switch {
	case cfg.CACertFile != "":
		pem, err := os.ReadFile(cfg.CACertFile)
		if err != nil {
			return nil, fmt.Errorf("read excel CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.CACertFile)
		}
		transport.TLSClientConfig = &tls.Config{RootCAs: pool}
	case cfg.InsecureSkipVerify:
		// Explicit opt-in for self-signed upstreams without a CA file.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &ExcelService{
		logger:  logger,
		client:  &http.Client{Transport: transport},
		baseURL: cfg.BaseURL,
	}, nil
}

// Generate POSTs {"result": content} to the upstream and returns the raw
// spreadsheet bytes. Non-200 answers surface as *UpstreamStatusError.
func (s *ExcelService) Generate(ctx context.Context, content string) ([]byte, error) {
	body, err := sonic.Marshal(models.ExcelUpstreamRequest{Result: content})
	if err != nil {
		return nil, fmt.Errorf("marshal excel request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/generate-excel", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build excel request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Printf("excel upstream request failed: %v\n", err)
		metrics.ExcelProxyTotal("transport_error")
		return nil, fmt.Errorf("excel upstream request: %w", err)
	}
	defer resp.Body.Close()

	metrics.ExcelProxyTotal(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamStatusError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read excel response: %w", err)
	}
	return data, nil
}
