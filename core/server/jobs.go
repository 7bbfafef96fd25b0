package server

import (
	"errors"
	"net/http"

	"github.com/ankit-chaubey/fileprops/core/batch"
	"github.com/ankit-chaubey/fileprops/core/journal"
)

// track keeps job queryable, evicting the oldest finished jobs past maxJobs.
func (s *Server) track(job *batch.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)

	for len(s.order) > maxJobs {
		oldest := s.jobs[s.order[0]]
		if oldest != nil && !oldest.Status().Done {
			break
		}
		delete(s.jobs, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *Server) job(id string) (*batch.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	return j, ok
}

func runFailure(err error) error {
	if errors.Is(err, journal.ErrRunNotFound) {
		return apiError(http.StatusNotFound, CodeNotFound, "%v", err)
	}
	return failure(err)
}

// pathOf returns the path a List.Add error refers to.
func pathOf(err error) string {
	var addErr *batch.AddError
	if errors.As(err, &addErr) {
		return addErr.Path
	}
	return ""
}
