// Package payloadmanager is used for fetching and validating the change source payload
package payloadmanager

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
)

// payloadManager represents the payload for petci
type payloadManager struct {
	logger   lumber.Logger
	requests core.Requests
}

// NewPayloadManger creates and returns a new PayloadManager instance
func NewPayloadManger(logger lumber.Logger, requests core.Requests) core.PayloadManager {
	return &payloadManager{
		logger:   logger,
		requests: requests,
	}
}

func (pm *payloadManager) FetchPayload(ctx context.Context, payloadAddress string) (*core.Payload, error) {
	var rawBytes []byte
	var err error
	if strings.HasPrefix(payloadAddress, "http://") || strings.HasPrefix(payloadAddress, "https://") {
		rawBytes, _, err = pm.requests.MakeAPIRequest(ctx, http.MethodGet, payloadAddress, nil, nil)
	} else {
		rawBytes, err = os.ReadFile(payloadAddress)
	}
	if err != nil {
		pm.logger.Errorf("failed to fetch payload from %s, error: %v", payloadAddress, err)
		return nil, err
	}
	p := new(core.Payload)
	if err := json.Unmarshal(rawBytes, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (pm *payloadManager) ValidatePayload(ctx context.Context, payload *core.Payload) error {
	if payload.EventType == "" {
		payload.EventType = core.EventPush
	}
	if payload.EventType != core.EventPush && payload.EventType != core.EventPullRequest {
		return errs.ErrInvalidPayload("Invalid event type")
	}

	// explicit lists need nothing else
	if payload.ChangedFiles != nil || payload.ChangedFilesFrom != "" {
		return nil
	}

	if payload.GitProvider != "" {
		switch payload.GitProvider {
		case core.GitHub, core.GitLab, core.Bitbucket:
		default:
			return errs.ErrUnsupportedGitProvider
		}
		if payload.RepoLink == "" {
			return errs.ErrInvalidPayload("Missing repo link")
		}
		if payload.EventType == core.EventPullRequest && payload.PullRequestNumber <= 0 {
			return errs.ErrInvalidPayload("Missing pull request number")
		}
		if payload.EventType == core.EventPush && payload.BaseCommit == "" {
			return errs.ErrInvalidPayload("Missing base commit")
		}
		return nil
	}

	if payload.PullRequestNumber > 0 {
		return errs.ErrInvalidPayload("Pull request number requires a git provider")
	}
	if payload.BaseCommit == "" {
		if payload.TargetCommit != "" {
			return errs.ErrInvalidPayload("Missing base commit")
		}
		return errs.ErrNoChangeSource
	}
	if payload.RepoDir == "" {
		pm.logger.Debugf("repository directory not set, diffing in the working directory")
	}
	return nil
}
