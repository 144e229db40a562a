package quizsession

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/brightpath-edu/academy_api/dto"
)

// HTTPSubmitter posts the terminal submission to the assessment API.
// Storage-unavailable responses are retried: the endpoint's keyed
// upserts make a full resubmission idempotent, so retrying is safe.
type HTTPSubmitter struct {
	client *resty.Client
}

func NewHTTPSubmitter(baseURL, bearerToken string) *HTTPSubmitter {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(bearerToken).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusServiceUnavailable
		})

	return &HTTPSubmitter{client: client}
}

type submitEnvelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    dto.SubmitQuizResponse `json:"data"`
}

func (s *HTTPSubmitter) Submit(ctx context.Context, sub Submission) (*dto.SubmitQuizResponse, error) {
	body := dto.SubmitQuizRequest{
		LessonID:   sub.LessonID,
		Answers:    sub.Answers,
		ForcedZero: sub.ForcedZero,
	}

	var envelope submitEnvelope
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&envelope).
		Post("/api/v1/assessment/submit")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("submission rejected (%d): %s", resp.StatusCode(), resp.String())
	}

	return &envelope.Data, nil
}
