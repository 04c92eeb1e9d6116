// Package requestutils wraps the http calls made to git provider APIs
package requestutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
	"github.com/cenkalti/backoff/v4"
)

type requests struct {
	logger  lumber.Logger
	client  http.Client
	backoff backoff.BackOff
}

// New returns a Requests client, policy decides how failed calls are retried.
func New(logger lumber.Logger, timeout time.Duration, policy backoff.BackOff) core.Requests {
	if policy == nil {
		policy = &backoff.StopBackOff{}
	}
	return &requests{
		logger:  logger,
		client:  http.Client{Timeout: timeout},
		backoff: policy,
	}
}

// RetryPolicy returns an exponential policy capped at retries attempts, or no retry at all.
func RetryPolicy(retries int) backoff.BackOff {
	if retries <= 0 {
		return &backoff.StopBackOff{}
	}
	return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries))
}

// MakeAPIRequest sends the request and returns the body and status code.
// Server errors and transport failures are retried, any other non 200 status is returned as errs.ErrAPIStatus.
func (r *requests) MakeAPIRequest(ctx context.Context,
	httpMethod, endpoint string,
	body []byte,
	headers map[string]string) ([]byte, int, error) {
	var respBody []byte
	var statusCode int

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, httpMethod, endpoint, bytes.NewBuffer(body))
		if err != nil {
			r.logger.Errorf("error while creating http request %v", err)
			return backoff.Permanent(err)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			r.logger.Errorf("error while sending http request %v", err)
			return err
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			r.logger.Errorf("error while reading http response body %v", err)
			return err
		}
		statusCode = resp.StatusCode

		if resp.StatusCode != http.StatusOK {
			r.logger.Errorf("non 200 status code %d from %s, body %s", resp.StatusCode, endpoint, string(respBody))
			statusErr := fmt.Errorf("%w: %d", errs.ErrAPIStatus, resp.StatusCode)
			if resp.StatusCode >= http.StatusInternalServerError {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(r.backoff, ctx)); err != nil {
		return respBody, statusCode, err
	}
	return respBody, statusCode, nil
}
