package consts

import "time"

// Network timeouts
const (
	CoverArtTimeout = 20 * time.Second
	ScraperTimeout  = 60 * time.Second
)

// Retry configuration
const (
	DefaultDownloadRetries = 3
	DefaultCatalogRetries  = 10
	CatalogRetryInterval   = 500 * time.Millisecond
	DefaultConcurrency     = 4
	DefaultDispatchStagger = 1500 * time.Millisecond
	ProgressReportInterval = 5 * time.Second
)

// File operations
const (
	FileCheckInterval = 100 * time.Millisecond
	FileWaitTimeout   = 2 * time.Second
)
