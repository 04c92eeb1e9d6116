package requestutils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
	"github.com/TranRoger/spring-petclinic-microservices/testutils"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeAPIRequest(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Header.Get("Authorization") != "Bearer token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte("diff"))
		case "/notfound":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	r := New(logger, global.DefaultHTTPTimeout, &backoff.StopBackOff{})

	tests := []struct {
		name       string
		path       string
		headers    map[string]string
		wantBody   string
		wantStatus int
		wantErr    error
	}{
		{"ok", "/ok", map[string]string{"Authorization": "Bearer token"}, "diff", http.StatusOK, nil},
		{"unauthorized", "/ok", nil, "", http.StatusUnauthorized, errs.ErrAPIStatus},
		{"not found", "/notfound", nil, "", http.StatusNotFound, errs.ErrAPIStatus},
		{"server error", "/boom", nil, "", http.StatusInternalServerError, errs.ErrAPIStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, status, err := r.MakeAPIRequest(context.TODO(), http.MethodGet, server.URL+tt.path, nil, tt.headers)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestMakeAPIRequest_retries(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1, 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte("ok"))
		}
	}))
	defer server.Close()

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 3)
	r := New(logger, global.DefaultHTTPTimeout, policy)
	body, status, err := r.MakeAPIRequest(context.TODO(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestMakeAPIRequest_clientErrorIsNotRetried(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	r := New(logger, global.DefaultHTTPTimeout, RetryPolicy(5))
	_, status, err := r.MakeAPIRequest(context.TODO(), http.MethodGet, server.URL, nil, nil)
	assert.True(t, errors.Is(err, errs.ErrAPIStatus))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetryPolicy(t *testing.T) {
	assert.IsType(t, &backoff.StopBackOff{}, RetryPolicy(0))
	assert.IsType(t, &backoff.StopBackOff{}, RetryPolicy(-1))
	assert.NotEqual(t, backoff.Stop, RetryPolicy(2).NextBackOff())
}
