package paginate_test

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/gitar-cli/gitar/pkg/engine"
	"github.com/gitar-cli/gitar/pkg/paginate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkHeader(self, next, last string) http.Header {
	h := http.Header{}
	var parts []string
	if next != "" {
		parts = append(parts, fmt.Sprintf(`<%s>; rel="next"`, next))
	}
	if last != "" {
		parts = append(parts, fmt.Sprintf(`<%s>; rel="last"`, last))
	}
	if len(parts) > 0 {
		h.Set("Link", join(parts))
	}
	return h
}

func join(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

func TestRunSequentialFollowsNextUntilAbsent(t *testing.T) {
	fetch := func(ctx context.Context, pageURL string) (*engine.Response, error) {
		switch pageURL {
		case "https://x/1":
			return &engine.Response{Body: []byte("p1"), Headers: linkHeader("", "https://x/2", "")}, nil
		case "https://x/2":
			return &engine.Response{Body: []byte("p2"), Headers: linkHeader("", "https://x/3", "")}, nil
		case "https://x/3":
			return &engine.Response{Body: []byte("p3"), Headers: http.Header{}}, nil
		}
		return nil, fmt.Errorf("unexpected url %s", pageURL)
	}

	res, err := paginate.Run(context.Background(), "https://x/1", fetch, paginate.Options{}, nil)
	require.NoError(t, err)
	require.Len(t, res.Pages, 3)
	assert.Equal(t, "p1", string(res.Pages[0].Body))
	assert.Equal(t, "p2", string(res.Pages[1].Body))
	assert.Equal(t, "p3", string(res.Pages[2].Body))
}

func TestRunParallelFanOutAscendingOrder(t *testing.T) {
	wrapped := func(ctx context.Context, pageURL string) (*engine.Response, error) {
		if pageURL == "https://x?page=1" {
			return &engine.Response{Body: []byte("page1"), Headers: linkHeader("", "", "https://x?page=4")}, nil
		}
		return &engine.Response{Body: []byte(pageURL)}, nil
	}

	res, err := paginate.Run(context.Background(), "https://x?page=1", wrapped, paginate.Options{}, nil)
	require.NoError(t, err)
	require.Len(t, res.Pages, 4)
	assert.Equal(t, "page1", string(res.Pages[0].Body))
	assert.Contains(t, string(res.Pages[1].Body), "page=2")
	assert.Contains(t, string(res.Pages[2].Body), "page=3")
	assert.Contains(t, string(res.Pages[3].Body), "page=4")
}

func TestRunNumPagesOnlyShortCircuits(t *testing.T) {
	var calls int
	fetch := func(ctx context.Context, pageURL string) (*engine.Response, error) {
		calls++
		return &engine.Response{Body: []byte("p1"), Headers: linkHeader("", "", "https://x?page=7")}, nil
	}
	res, err := paginate.Run(context.Background(), "https://x?page=1", fetch, paginate.Options{NumPagesOnly: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalPages)
	assert.Equal(t, 1, calls)
}

func TestRunAbortsOnRateLimitBreach(t *testing.T) {
	fetch := func(ctx context.Context, pageURL string) (*engine.Response, error) {
		return &engine.Response{Body: []byte("p1")}, nil
	}
	breached := func() bool { return true }
	_, err := paginate.Run(context.Background(), "https://x/1", fetch, paginate.Options{}, breached)
	require.Error(t, err)
}

func TestRunFallsBackToPageParamWithoutLinkHeaders(t *testing.T) {
	fetch := func(ctx context.Context, pageURL string) (*engine.Response, error) {
		switch pageURL {
		case "https://x?page=1":
			return &engine.Response{Body: []byte("p1")}, nil
		case "https://x?page=2":
			return &engine.Response{Body: []byte("p2")}, nil
		case "https://x?page=3":
			return &engine.Response{Body: []byte("")}, nil
		}
		return nil, fmt.Errorf("unexpected %s", pageURL)
	}
	res, err := paginate.Run(context.Background(), "https://x?page=1", fetch, paginate.Options{}, nil)
	require.NoError(t, err)
	require.Len(t, res.Pages, 2)
}

func TestRunOnPageFiresOncePerSequentialPage(t *testing.T) {
	fetch := func(ctx context.Context, pageURL string) (*engine.Response, error) {
		switch pageURL {
		case "https://x/1":
			return &engine.Response{Body: []byte("p1"), Headers: linkHeader("", "https://x/2", "")}, nil
		case "https://x/2":
			return &engine.Response{Body: []byte("p2"), Headers: http.Header{}}, nil
		}
		return nil, fmt.Errorf("unexpected url %s", pageURL)
	}

	var calls int32
	opts := paginate.Options{OnPage: func() { atomic.AddInt32(&calls, 1) }}
	res, err := paginate.Run(context.Background(), "https://x/1", fetch, opts, nil)
	require.NoError(t, err)
	require.Len(t, res.Pages, 2)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestRunOnPageFiresOncePerFanOutPage(t *testing.T) {
	fetch := func(ctx context.Context, pageURL string) (*engine.Response, error) {
		if pageURL == "https://x?page=1" {
			return &engine.Response{Body: []byte("page1"), Headers: linkHeader("", "", "https://x?page=4")}, nil
		}
		return &engine.Response{Body: []byte(pageURL)}, nil
	}

	var calls int32
	opts := paginate.Options{OnPage: func() { atomic.AddInt32(&calls, 1) }}
	res, err := paginate.Run(context.Background(), "https://x?page=1", fetch, opts, nil)
	require.NoError(t, err)
	require.Len(t, res.Pages, 4)
	assert.EqualValues(t, 4, atomic.LoadInt32(&calls))
}

func TestRunRespectsMaxPagesCap(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, pageURL string) (*engine.Response, error) {
		calls++
		return &engine.Response{Body: []byte("p"), Headers: linkHeader("", "https://x/next", "")}, nil
	}
	_, err := paginate.Run(context.Background(), "https://x/1", fetch, paginate.Options{MaxPages: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
