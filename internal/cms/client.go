// Package cms reads course content from the Contentful GraphQL API.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/sajjad-mugdho/frontend/internal/observability"
	"github.com/sajjad-mugdho/frontend/internal/solution"
)

const (
	cachePrefix       = "cms:v1"
	maxAssetDownloads = 4
	maxAssetBytes     = 1 << 20
)

// Config describes how to reach a Contentful space.
type Config struct {
	BaseURL     string
	SpaceID     string
	Environment string
	AccessToken string
	Timeout     time.Duration
}

// Client fetches course content and caches responses in Redis when a cache is configured.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	cache      *redis.Client
	ttl        time.Duration
	logger     zerolog.Logger
	tracer     trace.Tracer
}

var _ Source = (*Client)(nil)

// NewClient constructs a Contentful client.
func NewClient(cfg Config, httpClient *http.Client, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://graphql.contentful.com"
	}
	environment := cfg.Environment
	if environment == "" {
		environment = "master"
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Client{
		endpoint:   fmt.Sprintf("%s/content/v1/spaces/%s/environments/%s", baseURL, cfg.SpaceID, environment),
		token:      cfg.AccessToken,
		httpClient: httpClient,
		cache:      cache,
		ttl:        ttl,
		logger:     logger.With().Str("component", "cms_client").Logger(),
		tracer:     otel.Tracer("github.com/sajjad-mugdho/frontend/internal/cms"),
	}
}

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var envelope courseEnvelope
	if err := c.query(ctx, "courses", nil, queryCourses, nil, &envelope); err != nil {
		return nil, err
	}

	courses := make([]Course, 0, len(envelope.CourseModuleCollection.Items))
	for _, item := range envelope.CourseModuleCollection.Items {
		courses = append(courses, item.toCourse())
	}
	return courses, nil
}

func (c *Client) GetCourse(ctx context.Context, slug string) (Course, error) {
	var envelope courseEnvelope
	variables := map[string]interface{}{"courseSlug": slug}
	if err := c.query(ctx, "course", []string{slug}, queryCourse, variables, &envelope); err != nil {
		return Course{}, err
	}

	item, ok := envelope.first()
	if !ok {
		return Course{}, fmt.Errorf("course %q: %w", slug, ErrNotFound)
	}
	return item.toCourse(), nil
}

// GetSection returns nil without an error when the index is out of range
// for an existing course.
func (c *Client) GetSection(ctx context.Context, slug string, index int) (*Section, error) {
	if index < 0 {
		return nil, nil
	}

	var envelope courseEnvelope
	variables := map[string]interface{}{"courseSlug": slug, "sectionIndex": index}
	if err := c.query(ctx, "section", []string{slug, strconv.Itoa(index)}, querySection, variables, &envelope); err != nil {
		return nil, err
	}

	item, ok := envelope.first()
	if !ok {
		return nil, fmt.Errorf("course %q: %w", slug, ErrNotFound)
	}
	if item.SectionsCollection == nil || len(item.SectionsCollection.Items) == 0 {
		return nil, nil
	}

	section := item.SectionsCollection.Items[0].toSection()
	return &section, nil
}

func (c *Client) ListSections(ctx context.Context, slug string) ([]Section, error) {
	var envelope courseEnvelope
	variables := map[string]interface{}{"courseSlug": slug}
	if err := c.query(ctx, "sections", []string{slug}, querySections, variables, &envelope); err != nil {
		return nil, err
	}

	item, ok := envelope.first()
	if !ok {
		return nil, fmt.Errorf("course %q: %w", slug, ErrNotFound)
	}

	sections := []Section{}
	if item.SectionsCollection != nil {
		for _, section := range item.SectionsCollection.Items {
			sections = append(sections, section.toSection())
		}
	}
	return sections, nil
}

func (c *Client) GetLesson(ctx context.Context, slug string, sectionIndex, lessonIndex int) (Lesson, error) {
	if sectionIndex < 0 || lessonIndex < 0 {
		return Lesson{}, fmt.Errorf("lesson %d of section %d: %w", lessonIndex, sectionIndex, ErrNotFound)
	}

	var envelope courseEnvelope
	variables := map[string]interface{}{
		"courseSlug":   slug,
		"sectionIndex": sectionIndex,
		"lessonIndex":  lessonIndex,
	}
	args := []string{slug, strconv.Itoa(sectionIndex), strconv.Itoa(lessonIndex)}
	if err := c.query(ctx, "lesson", args, queryLesson, variables, &envelope); err != nil {
		return Lesson{}, err
	}

	item, ok := envelope.first()
	if !ok {
		return Lesson{}, fmt.Errorf("course %q: %w", slug, ErrNotFound)
	}
	if item.SectionsCollection == nil || len(item.SectionsCollection.Items) == 0 {
		return Lesson{}, fmt.Errorf("section %d: %w", sectionIndex, ErrNotFound)
	}
	lessons := item.SectionsCollection.Items[0].LessonsCollection
	if lessons == nil || len(lessons.Items) == 0 {
		return Lesson{}, fmt.Errorf("lesson %d of section %d: %w", lessonIndex, sectionIndex, ErrNotFound)
	}

	return lessons.Items[0].toLesson(), nil
}

// FetchFiles downloads the asset bodies and returns them as editor files in
// the order of the input.
func (c *Client) FetchFiles(ctx context.Context, assets []Asset) ([]solution.File, error) {
	files := make([]solution.File, len(assets))
	if len(assets) == 0 {
		return files, nil
	}

	ctx, span := c.tracer.Start(ctx, "cms.fetch_files")
	span.SetAttributes(attribute.Int("cms.asset_count", len(assets)))
	defer span.End()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxAssetDownloads)

	for i, asset := range assets {
		group.Go(func() error {
			code, err := c.download(groupCtx, asset.URL)
			if err != nil {
				return fmt.Errorf("download %q: %w", asset.Title, err)
			}
			files[i] = solution.File{
				FileName: asset.Title,
				Code:     code,
				Language: asset.Language(),
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch_files_failed")
		return nil, err
	}
	return files, nil
}

func (c *Client) download(ctx context.Context, rawURL string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", nil
	}
	if strings.HasPrefix(rawURL, "//") {
		rawURL = "https:" + rawURL
	}

	key := c.cacheKey("asset", []string{rawURL})
	if cached, ok := c.fetchCache(ctx, "asset", key); ok {
		return string(cached), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: asset non-2xx: %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(body) > maxAssetBytes {
		return "", fmt.Errorf("%w: asset too large: more than %d bytes", ErrUpstream, maxAssetBytes)
	}

	c.writeCache(ctx, key, body)
	return string(body), nil
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) query(ctx context.Context, op string, args []string, query string, variables map[string]interface{}, out interface{}) error {
	ctx, span := c.tracer.Start(ctx, "cms."+op)
	span.SetAttributes(attribute.String("cms.operation", op))
	defer span.End()

	key := c.cacheKey(op, args)
	if cached, ok := c.fetchCache(ctx, op, key); ok {
		if err := json.Unmarshal(cached, out); err == nil {
			span.SetAttributes(attribute.Bool("cms.cache_hit", true))
			return nil
		}
		c.logger.Warn().Str("key", key).Msg("failed to decode cms cache")
	}

	data, err := c.post(ctx, query, variables)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, op+"_failed")
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, op, err)
	}

	c.writeCache(ctx, key, data)
	return nil
}

func (c *Client) post(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: contentful non-2xx: %d", ErrUpstream, resp.StatusCode)
	}

	var payload graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(payload.Errors) > 0 {
		messages := make([]string, 0, len(payload.Errors))
		for _, item := range payload.Errors {
			messages = append(messages, item.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrUpstream, strings.Join(messages, "; "))
	}
	if len(payload.Data) == 0 || string(payload.Data) == "null" {
		return nil, fmt.Errorf("%w: empty response", ErrUpstream)
	}

	return payload.Data, nil
}

func (c *Client) fetchCache(ctx context.Context, op, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}

	payload, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to read cms cache")
		}
		observability.CMSCacheRequests().WithLabelValues(op, "miss").Inc()
		return nil, false
	}

	observability.CMSCacheRequests().WithLabelValues(op, "hit").Inc()
	return payload, true
}

func (c *Client) writeCache(ctx context.Context, key string, payload []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to store cms cache")
	}
}

func (c *Client) cacheKey(op string, args []string) string {
	parts := append([]string{cachePrefix, op}, args...)
	return strings.Join(parts, ":")
}
