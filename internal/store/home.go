package store

import (
	"context"
	"time"

	"orusweb/internal/models"
)

// HomeState caches the storefront landing data.
type HomeState struct {
	Data      *models.HomeData `json:"data"`
	FetchedAt time.Time        `json:"fetched_at"`
}

type Home struct {
	*Store[HomeState]
	ttl time.Duration
	now func() time.Time
}

func NewHome(ttl time.Duration) *Home {
	return &Home{Store: New(HomeState{}), ttl: ttl, now: time.Now}
}

// Load returns the cached data, fetching it when missing or stale. Fetches
// run on the writer so concurrent callers share one request.
func (h *Home) Load(ctx context.Context, fetch func(ctx context.Context) (*models.HomeData, error)) (*models.HomeData, error) {
	st, err := h.Update(func(cur HomeState) (HomeState, error) {
		if cur.Data != nil && h.now().Sub(cur.FetchedAt) < h.ttl {
			return cur, nil
		}
		data, err := fetch(ctx)
		if err != nil {
			return cur, err
		}
		return HomeState{Data: data, FetchedAt: h.now()}, nil
	})
	if err != nil && st.Data != nil {
		// stale data is served when a refresh fails
		return st.Data, nil
	}
	return st.Data, err
}
