package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedClient wraps a ChatClient with a token bucket that every
// message sent through its sessions draws from.
type RateLimitedClient struct {
	client  ChatClient
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps the given client with a rate limiter that allows
// at most rpm messages per minute, with bursts of up to rpm.
func NewRateLimitedClient(client ChatClient, rpm int) *RateLimitedClient {
	return &RateLimitedClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm),
	}
}

func (r *RateLimitedClient) Name() string {
	return r.client.Name()
}

func (r *RateLimitedClient) CreateSession(ctx context.Context, cfg SessionConfig) (ChatSession, error) {
	sess, err := r.client.CreateSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &rateLimitedSession{session: sess, limiter: r.limiter}, nil
}

type rateLimitedSession struct {
	session ChatSession
	limiter *rate.Limiter
}

func (s *rateLimitedSession) SendStreaming(ctx context.Context, text string) (Stream, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.session.SendStreaming(ctx, text)
}
