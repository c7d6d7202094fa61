package schedule

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/busradar/pkg/tabular"
)

const defaultUserAgent = "busradar/1.0"

// Sources locates the four static resources. Each may be an http(s) URL or a local file path.
type Sources struct {
	Stops     string `yaml:"stops"`
	Routes    string `yaml:"routes"`
	Trips     string `yaml:"trips"`
	StopTimes string `yaml:"stoptimes"`
}

type Loader struct {
	Sources    Sources
	HTTPClient *http.Client
	Delimiter  rune
	MaxRetries uint64
	UserAgent  string
}

func NewLoader(sources Sources, timeout time.Duration) *Loader {
	return &Loader{
		Sources:    sources,
		HTTPClient: &http.Client{Timeout: timeout},
		Delimiter:  ',',
		MaxRetries: 2,
		UserAgent:  defaultUserAgent,
	}
}

// Load fetches all four resources concurrently and builds a new index.
// A failure of any one resource fails the whole load.
func (l *Loader) Load(ctx context.Context) (*Index, error) {
	var tables Tables

	targets := []struct {
		name     string
		location string
		table    **tabular.Table
	}{
		{"stops", l.Sources.Stops, &tables.Stops},
		{"routes", l.Sources.Routes, &tables.Routes},
		{"trips", l.Sources.Trips, &tables.Trips},
		{"stop_times", l.Sources.StopTimes, &tables.StopTimes},
	}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	for _, target := range targets {
		target := target

		p.Go(func(ctx context.Context) error {
			table, err := l.loadTable(ctx, target.name, target.location)
			if err != nil {
				return err
			}

			*target.table = table
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return Build(tables)
}

func (l *Loader) loadTable(ctx context.Context, name string, location string) (*tabular.Table, error) {
	startTime := time.Now()

	raw, err := l.fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrFetch, name, err)
	}

	decoded := tabular.DetectEncoding(raw)

	table, err := tabular.Decode(decoded.Text, l.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, name, err)
	}

	log.Info().
		Str("table", name).
		Str("encoding", decoded.Encoding).
		Bool("degraded", decoded.Degraded).
		Int("rows", table.Len()).
		Str("took", time.Since(startTime).String()).
		Msg("Loaded schedule table")

	return table, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, fmt.Errorf("no source configured")
	}

	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		return os.ReadFile(location)
	}

	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "text/csv")
		req.Header.Set("User-Agent", l.UserAgent)

		resp, err := l.HTTPClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("HTTP %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	retryBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), l.MaxRetries), ctx)

	err := backoff.RetryNotify(operation, retryBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("source", location).Str("wait", wait.String()).Msg("Retrying schedule download")
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}
