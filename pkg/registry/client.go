// Package registry fetches package metadata from an npm registry.
//
// The client caches responses on disk (see pkg/httputil) and retries
// transient failures with exponential backoff. Only the metadata the
// catalog command needs is decoded: the dist-tags and the version list.
package registry

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
	"github.com/pnpm-extra/pnpm-extra/pkg/httputil"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

const httpTimeout = 10 * time.Second

// PackageInfo is the subset of registry metadata the tool consumes.
// Versions holds every published version string in ascending lexicographic
// order.
type PackageInfo struct {
	Name     string   `json:"name"`
	Latest   string   `json:"latest"`
	Versions []string `json:"versions"`
}

// Client queries an npm-compatible registry with caching and retries.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	baseURL string
}

// NewClient creates a registry client. An empty baseURL selects
// [DefaultBaseURL]. Responses are cached on disk for cacheTTL.
func NewClient(baseURL string, cacheTTL time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cache, err := httputil.NewCache("", cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// FetchPackage returns metadata for pkg, consulting the cache first.
// If refresh is true the cache is bypassed and the registry is always hit.
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = strings.TrimSpace(pkg)
	if err := errors.ValidateNpmPackageName(pkg); err != nil {
		return nil, err
	}
	key := "npm:" + pkg

	var info PackageInfo
	if !refresh {
		if ok, _ := c.cache.Get(key, &info); ok {
			return &info, nil
		}
	}

	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(key, &info)
	return &info, nil
}

// Latest returns the version behind the "latest" dist-tag for pkg.
func (c *Client) Latest(ctx context.Context, pkg string, refresh bool) (string, error) {
	info, err := c.FetchPackage(ctx, pkg, refresh)
	if err != nil {
		return "", err
	}
	if info.Latest == "" {
		return "", errors.New(errors.ErrCodeNotFound, "package %s has no latest dist-tag", pkg)
	}
	return info.Latest, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	// Scoped names keep the "@" but the inner slash must be escaped.
	path := strings.ReplaceAll(pkg, "/", "%2F")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "building registry request for %s", pkg)
	}
	// Abbreviated metadata is an order of magnitude smaller than the full
	// packument and carries everything we decode.
	req.Header.Set("Accept", "application/vnd.npm.install-v1+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetching %s", pkg)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, pkg); err != nil {
		return err
	}

	var data registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "decoding registry response for %s", pkg)
	}

	*info = PackageInfo{
		Name:   data.Name,
		Latest: data.DistTags.Latest,
	}
	info.Versions = slices.Sorted(maps.Keys(data.Versions))
	return nil
}

func checkStatus(code int, pkg string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodePackageNotFound, "package %s not found in registry", pkg)
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "registry returned status %d for %s", code, pkg)}
	default:
		return errors.New(errors.ErrCodeNetwork, "registry returned status %d for %s", code, pkg)
	}
}

type registryResponse struct {
	Name     string                     `json:"name"`
	DistTags distTags                   `json:"dist-tags"`
	Versions map[string]json.RawMessage `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}
