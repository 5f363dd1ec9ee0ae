package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/shoplist/internal/analytics"
	"github.com/muurk/shoplist/internal/api"
	"github.com/muurk/shoplist/internal/config"
	"github.com/muurk/shoplist/internal/discovery"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopping"
)

// resolveBaseURL returns the configured service URL, or the first service
// found over mDNS when none is configured or --discover is set.
func resolveBaseURL(ctx context.Context) (string, error) {
	if cfg.API.BaseURL != "" && !forceDiscover {
		return cfg.API.BaseURL, nil
	}
	if !cfg.Discovery.Enabled && !forceDiscover {
		return "", errors.New("no service URL configured and discovery is disabled (use --api-url)")
	}

	scanner := &discovery.Scanner{Timeout: cfg.Discovery.Timeout}
	svc, err := scanner.First(ctx)
	if err != nil {
		return "", fmt.Errorf("service discovery failed: %w", err)
	}
	logging.Info("Using discovered service", zap.String("service", svc.String()))
	return svc.BaseURL(), nil
}

// newClient builds an API client for baseURL from the api section of the config.
func newClient(baseURL string) *api.Client {
	return api.NewClient(baseURL, api.Options{
		Timeout:     cfg.API.Timeout,
		CacheTTL:    cfg.API.CacheTTL,
		ReadRetries: cfg.API.ReadRetries,
	})
}

// newTracker builds the analytics sink for the configured mode. The returned
// closer flushes and stops it.
func newTracker(baseURL string) (analytics.Tracker, io.Closer) {
	switch cfg.Analytics.Mode {
	case config.AnalyticsOff:
		return analytics.Nop{}, nopCloser{}
	case config.AnalyticsWebSocket:
		url := cfg.EventsURL(baseURL)
		if url == "" {
			logging.Warn("No analytics collector URL, events are only logged")
			return analytics.LogTracker{}, nopCloser{}
		}
		ws := analytics.NewWebSocketTracker(url, cfg.Analytics.Buffer)
		return analytics.Multi{analytics.LogTracker{}, ws}, ws
	default:
		return analytics.LogTracker{}, nopCloser{}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// findList resolves ref as a list id first, then as an exact name.
func findList(lists []shopping.List, ref string) (shopping.List, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		for _, l := range lists {
			if l.ID == id {
				return l, nil
			}
		}
	}
	for _, l := range lists {
		if l.Name == ref {
			return l, nil
		}
	}
	for _, l := range lists {
		if strings.EqualFold(l.Name, ref) {
			return l, nil
		}
	}
	return shopping.List{}, fmt.Errorf("no shopping list %q", ref)
}

// troubleshooting tips shown with connection failures
func connectionTips(baseURL string) []string {
	return []string{
		fmt.Sprintf("Check that the service is running at %s", baseURL),
		"Start a local one with 'shoplist-server serve'",
		"Use --api-url to point at a different service",
		"Use 'shoplist scan' to look for services on the network",
	}
}
