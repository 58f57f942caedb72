package controller

import (
	"log/slog"

	"github.com/mmcdole/tunedl/internal/domain"
)

// TriggerOrganize enters the organize loading state and asks for the
// request. It does nothing while the organize trigger is disabled.
func TriggerOrganize(s *State, _ Event) Effect {
	if s.Organize.Trigger.Disabled {
		return Effect{}
	}
	s.Organize.Status = Status{}
	s.Organize.Trigger.setLoading(true)
	return Effect{Kind: EffectOrganize}
}

// ApplyOrganize leaves the loading state and renders the response
func ApplyOrganize(s *State, resp domain.OrganizeResponse, logger *slog.Logger) Effect {
	if logger == nil {
		logger = slog.Default()
	}
	s.Organize.Trigger.setLoading(false)

	if resp.Err != nil {
		logger.Error("organize request failed", "error", resp.Err, "status", resp.StatusCode, "request_id", resp.RequestID)
		s.showOrganizeStatus(StatusError, MsgNetworkError)
		return Effect{}
	}

	if !isOK(resp.StatusCode) {
		logger.Error("organize error",
			"status", resp.StatusCode,
			"error", resp.Result.Error,
			"details", resp.Result.Details,
			"request_id", resp.RequestID,
		)
		s.showOrganizeStatus(StatusError, FirstMessage(resp.Result, organizeErrorChain...))
		return Effect{}
	}

	s.showOrganizeStatus(StatusSuccess, FirstMessage(resp.Result, organizeSuccessChain...))
	return Effect{}
}
