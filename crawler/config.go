package crawler

import (
	"time"
)

// MobileChromeUserAgent is sent with every page request so that sites serve
// the same markup a phone browser would get.
const MobileChromeUserAgent = "Mozilla/5.0 (Linux; Android 10; Pixel 4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/89.0.4389.82 Mobile Safari/537.36"

type FetcherConfig struct {
	UserAgent      string
	RequestTimeout time.Duration
	MaxBodySize    int
	ProxyURL       string
}

// DefaultConfig returns a default fetcher configuration
func DefaultConfig() *FetcherConfig {
	return &FetcherConfig{
		UserAgent:      MobileChromeUserAgent,
		RequestTimeout: 20 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
	}
}
