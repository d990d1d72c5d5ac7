package progress

import "context"

// Recorder adapts a Repo to the fire-and-forget recording interface the
// trainer session expects. Persistence failures must never interrupt
// practice, so they are routed to OnError instead of returned.
type Recorder struct {
	repo    Repo
	onError func(error)
}

// NewRecorder wraps a repo. onError may be nil, in which case failures are
// dropped.
func NewRecorder(repo Repo, onError func(error)) *Recorder {
	return &Recorder{repo: repo, onError: onError}
}

func (r *Recorder) report(err error) {
	if err != nil && r.onError != nil {
		r.onError(err)
	}
}

func (r *Recorder) RecordAccess(itemID string) {
	r.report(r.repo.RecordAccess(context.Background(), itemID))
}

func (r *Recorder) RecordAnswer(itemID string, correct bool) {
	r.report(r.repo.RecordAnswer(context.Background(), itemID, correct))
}

func (r *Recorder) RecordRetry(itemID string) {
	r.report(r.repo.RecordRetry(context.Background(), itemID))
}
