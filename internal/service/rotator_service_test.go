/*
The provider and the fetcher are covered by their own httptest-based tests,
so here they are mocked and the service is tested on behavior only.
*/
package service

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"proxy-rotator/config"
	"proxy-rotator/internal/balancer"
	"proxy-rotator/internal/errdefs"
	"proxy-rotator/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Fetch(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, proxyAddr, target string) (*models.FetchResult, error) {
	args := m.Called(ctx, proxyAddr, target)
	res, _ := args.Get(0).(*models.FetchResult)
	return res, args.Error(1)
}

var cfg *config.Config

func TestMain(m *testing.M) {
	var err error

	cfg, err = config.LoadConfig("../../config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	code := m.Run()
	os.Exit(code)
}

func newService(t *testing.T) (*RotatorService, *MockProvider, *MockFetcher) {
	bal, err := balancer.New(cfg.Rotator.Strategy)
	require.NoError(t, err)
	prov := new(MockProvider)
	fetch := new(MockFetcher)
	return NewRotatorService(cfg, prov, bal, fetch), prov, fetch
}

func TestRotatorService(t *testing.T) {
	ctx := context.Background()

	t.Run("NextOnEmptyIsAbsent", func(t *testing.T) {
		svc, _, _ := newService(t)
		for i := 0; i < 10; i++ {
			_, err := svc.Next(ctx)
			require.ErrorIs(t, err, errdefs.ErrNoProxy)
		}
	})

	t.Run("RoundRobinCycle", func(t *testing.T) {
		svc, prov, _ := newService(t)
		list := []string{"1.1.1.1:80", "2.2.2.2:81", "3.3.3.3:82", "4.4.4.4:83"}
		prov.On("Fetch", ctx).Return(list, nil).Once()

		n, err := svc.Refresh(ctx)
		require.NoError(t, err)
		require.Equal(t, len(list), n)

		seen := map[string]int{}
		for range list {
			p, err := svc.Next(ctx)
			require.NoError(t, err)
			seen[p]++
		}
		for _, p := range list {
			require.Equal(t, 1, seen[p], "each proxy exactly once per cycle")
		}

		p, err := svc.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, list[0], p, "N+1th call wraps to the first proxy")
		prov.AssertExpectations(t)
	})

	t.Run("FailedRefreshKeepsListAndCursor", func(t *testing.T) {
		svc, prov, _ := newService(t)
		list := []string{"a:1", "b:2", "c:3"}
		prov.On("Fetch", ctx).Return(list, nil).Once()
		_, err := svc.Refresh(ctx)
		require.NoError(t, err)

		first, _ := svc.Next(ctx)
		require.Equal(t, "a:1", first)

		prov.On("Fetch", ctx).Return(nil, errors.New("dial tcp: no route to host")).Once()
		n, err := svc.Refresh(ctx)
		require.ErrorIs(t, err, errdefs.ErrListFetch)
		require.Zero(t, n)

		require.Equal(t, list, svc.Proxies())
		next, _ := svc.Next(ctx)
		require.Equal(t, "b:2", next, "cursor must not move on a failed refresh")
		prov.AssertExpectations(t)
	})

	t.Run("RefreshReplacesWholesale", func(t *testing.T) {
		svc, prov, _ := newService(t)
		prov.On("Fetch", ctx).Return([]string{"a:1", "b:2"}, nil).Once()
		prov.On("Fetch", ctx).Return([]string{}, nil).Once()

		_, err := svc.Refresh(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, svc.Len())

		n, err := svc.Refresh(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
		require.Zero(t, svc.Len())
		_, err = svc.Next(ctx)
		require.ErrorIs(t, err, errdefs.ErrNoProxy)
	})

	t.Run("FetchThroughEmptyMakesNoCall", func(t *testing.T) {
		svc, _, fetch := newService(t)

		_, err := svc.FetchThrough(ctx, "http://example.test/")
		require.ErrorIs(t, err, errdefs.ErrNoProxy)
		fetch.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FetchThroughRotatesOneCallEach", func(t *testing.T) {
		svc, prov, fetch := newService(t)
		prov.On("Fetch", ctx).Return([]string{"a:1", "b:2"}, nil).Once()
		_, err := svc.Refresh(ctx)
		require.NoError(t, err)

		target := "http://example.test/data"
		fetch.On("Fetch", ctx, "a:1", target).
			Return(&models.FetchResult{Proxy: "a:1", Target: target, StatusCode: 200, Body: "one"}, nil).
			Once()
		fetch.On("Fetch", ctx, "b:2", target).
			Return(nil, errdefs.Wrap(errdefs.ErrProxyRequest, "connection refused")).
			Once()

		res, err := svc.FetchThrough(ctx, target)
		require.NoError(t, err)
		require.Equal(t, "one", res.Body)

		res, err = svc.FetchThrough(ctx, target)
		require.ErrorIs(t, err, errdefs.ErrProxyRequest)
		require.Equal(t, "b:2", res.Proxy, "failed result names the proxy")
		require.Empty(t, res.Body)

		fetch.AssertExpectations(t)
		fetch.AssertNumberOfCalls(t, "Fetch", 2)
	})

	t.Run("FetchThroughInvalidTarget", func(t *testing.T) {
		svc, prov, fetch := newService(t)
		prov.On("Fetch", ctx).Return([]string{"a:1", "b:2"}, nil).Once()
		_, err := svc.Refresh(ctx)
		require.NoError(t, err)

		for _, target := range []string{"", "example.test/x", "ftp://example.test/"} {
			_, err := svc.FetchThrough(ctx, target)
			require.ErrorIs(t, err, errdefs.ErrInvalidInput, target)
		}
		fetch.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)

		p, _ := svc.Next(ctx)
		require.Equal(t, "a:1", p, "rejected targets do not consume a proxy")
	})
}
