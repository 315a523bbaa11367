package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"studiodeck/internal/logging"
	"studiodeck/internal/models"
)

// ErrNoContent is returned when a page's persisted content list is empty.
// The public route surfaces a "no content" state instead of a deck.
var ErrNoContent = errors.New("page has no content")

// ProjectSource resolves project references during flattening.
// *ProjectService satisfies it; tests substitute stubs.
type ProjectSource interface {
	GetByHexID(ctx context.Context, hex string) (*models.Project, error)
}

// DeckService flattens a persisted page into the ordered RenderSlide sequence
// consumed by the fullscreen viewer.
type DeckService struct {
	projects ProjectSource
	redis    *RedisService // nil disables the shared deck cache
	metrics  *Metrics      // nil disables instrumentation
	cacheTTL time.Duration

	// short-lived in-process cache of project records, so one hot slug does
	// not hammer the document store between deck-cache expiries
	projectCache *gocache.Cache
}

// NewDeckService creates a new deck service
func NewDeckService(projects ProjectSource, redis *RedisService, metrics *Metrics, cacheTTL time.Duration) *DeckService {
	return &DeckService{
		projects:     projects,
		redis:        redis,
		metrics:      metrics,
		cacheTTL:     cacheTTL,
		projectCache: gocache.New(1*time.Minute, 5*time.Minute),
	}
}

// BuildDeckCached returns the flattened deck for a page, serving from the
// Redis cache when possible. Cache failures fall through to a fresh build.
func (s *DeckService) BuildDeckCached(ctx context.Context, page *models.Page) (*models.Deck, error) {
	if s.redis != nil {
		if raw, ok := s.redis.Get(ctx, deckCacheKey(page.Slug)); ok {
			var deck models.Deck
			if err := json.Unmarshal([]byte(raw), &deck); err == nil {
				if s.metrics != nil {
					s.metrics.DeckCacheLookups.WithLabelValues("hit").Inc()
				}
				return &deck, nil
			}
		}
		if s.metrics != nil {
			s.metrics.DeckCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	deck, err := s.BuildDeck(ctx, page)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if raw, err := json.Marshal(deck); err == nil {
			s.redis.Set(ctx, deckCacheKey(page.Slug), string(raw), s.cacheTTL)
		}
	}
	return deck, nil
}

// BuildDeck flattens a page into its RenderSlide sequence:
//
//  1. Every referenced project is fetched concurrently, best-effort; a failed
//     or missing fetch marks the reference unresolved without aborting the rest.
//  2. The content list is walked in persisted order. Project items emit one
//     slide per effective slide URL (the item's selection, or the project's
//     live slides when the selection is empty); unresolved items emit nothing;
//     slide breaks emit exactly one slide.
//  3. A fixed opening slide (carrying the page's start-slide settings) is
//     prepended and a fixed closing slide appended.
func (s *DeckService) BuildDeck(ctx context.Context, page *models.Page) (*models.Deck, error) {
	if len(page.Content) == 0 {
		return nil, ErrNoContent
	}

	start := time.Now()
	logger := logging.WithDeck(page.ID.Hex(), page.Slug)

	resolved := s.fetchProjects(ctx, page.Content, logger)

	slides := make([]models.RenderSlide, 0, len(page.Content)+2)

	startSlide := page.StartSlide
	startSlide.ApplyDefaults()
	slides = append(slides, models.RenderSlide{
		Kind:       models.RenderSlideOpening,
		StartSlide: &startSlide,
	})

	for _, item := range page.Content {
		switch item.Type {
		case models.ContentTypeProject:
			project, ok := resolved[item.ProjectID]
			if !ok {
				// dangling reference: deleted project, skip silently
				if s.metrics != nil {
					s.metrics.UnresolvedRefs.Inc()
				}
				logger.Debug("skipping unresolved project reference", "project_id", item.ProjectID)
				continue
			}
			urls := item.SelectedSlides
			if len(urls) == 0 {
				urls = project.Slides
			}
			for _, url := range urls {
				slides = append(slides, models.RenderSlide{
					Kind:             models.RenderSlideProject,
					ImageURL:         url,
					ProjectName:      project.Name,
					LiveWebsiteLink:  project.LiveWebsiteLink,
					LiveWebsiteLabel: project.LiveWebsiteLabel,
					SDWorkLink:       project.SDWorkLink,
					SDWorkLabel:      project.SDWorkLabel,
				})
			}
		case models.ContentTypeSlideBreak:
			slides = append(slides, models.RenderSlide{
				Kind:  models.RenderSlideSlideBreak,
				Title: item.Title,
				Text:  item.Text,
			})
		}
	}

	slides = append(slides, models.RenderSlide{Kind: models.RenderSlideClosing})

	if s.metrics != nil {
		s.metrics.DeckBuilds.Inc()
		s.metrics.DeckBuildLatency.Observe(time.Since(start).Seconds())
	}

	return &models.Deck{
		Slug:   page.Slug,
		Name:   page.Name,
		Slides: slides,
	}, nil
}

// InvalidateSlug drops the cached deck for a slug. Called after page saves.
func (s *DeckService) InvalidateSlug(ctx context.Context, slug string) {
	if s.redis != nil {
		s.redis.Delete(ctx, deckCacheKey(slug))
	}
}

// fetchProjects resolves every distinct project reference in the content list
// concurrently and joins all lookups, tolerating individual failures. The
// returned map contains only the references that resolved; order of emission
// is decided later by the caller, never by fetch completion.
func (s *DeckService) fetchProjects(ctx context.Context, items []models.ContentItem, logger *slog.Logger) map[string]*models.Project {
	ids := make(map[string]struct{})
	for _, item := range items {
		if item.IsProject() && item.ProjectID != "" {
			ids[item.ProjectID] = struct{}{}
		}
	}

	resolved := make(map[string]*models.Project, len(ids))

	// First settle cache hits, so the map is only written concurrently by the
	// fetch goroutines below, all under mu.
	var misses []string
	for id := range ids {
		if cached, ok := s.projectCache.Get(id); ok {
			resolved[id] = cached.(*models.Project)
			continue
		}
		misses = append(misses, id)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range misses {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			project, err := s.projects.GetByHexID(ctx, id)
			if err != nil {
				logger.Warn("project fetch failed", "project_id", id, "error", err)
				return
			}
			s.projectCache.SetDefault(id, project)
			mu.Lock()
			resolved[id] = project
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	return resolved
}

func deckCacheKey(slug string) string {
	return "deck:" + slug
}
