package controller

// WentOffline shows a persistent error notice in the download status region
func WentOffline(s *State, _ Event) Effect {
	if s.Network == NetworkOffline {
		return Effect{}
	}
	s.Network = NetworkOffline
	s.showDownloadStatus(StatusError, MsgConnectionLost)
	return Effect{}
}

// WentOnline shows a short-lived notice after an outage. The first probe
// after startup only records the state.
func WentOnline(s *State, _ Event) Effect {
	prev := s.Network
	s.Network = NetworkOnline
	if prev != NetworkOffline {
		return Effect{}
	}

	notice := s.showDownloadStatus(StatusSuccess, MsgConnectionRestore)
	return Effect{Kind: EffectExpireStatus, Delay: NoticeDuration, StatusID: notice.ID}
}

// ExpireStatus clears the download status if it is still the one that
// scheduled the expiry
func ExpireStatus(s *State, ev Event) Effect {
	if s.Download.Status.ID == ev.StatusID {
		s.Download.Status = Status{}
	}
	return Effect{}
}
