package coordination

import (
	"github.com/phrazzld/bgtasks/internal/domain"
	"github.com/phrazzld/bgtasks/internal/timer"
)

// Snapshot is a read-only copy of every slice plus the derived views.
type Snapshot struct {
	Timer             domain.TimerState     `json:"globalTimer"`
	FormattedTimer    string                `json:"formattedTimer"`
	Fetch             domain.FetchState     `json:"apiData"`
	PostsCount        int                   `json:"postsCount"`
	LatestPosts       []domain.Post         `json:"latestPosts"`
	Worker            domain.WorkerState    `json:"workerData"`
	Notifications     []domain.Notification `json:"notifications"`
	NotificationCount int                   `json:"notificationCount"`
	CurrentPage       string                `json:"currentPage"`
}

// Snapshot copies the current state. Views are derived from the copied
// slices, so PostsCount always matches len(Fetch.Items).
func (s *Store) Snapshot() Snapshot {
	timerState := s.timer.State()
	fetchState := s.fetch.State()
	notifications := s.notifications.List()

	latest := fetchState.Items
	if len(latest) > LatestPostsLimit {
		latest = latest[:LatestPostsLimit]
	}
	latestCopy := make([]domain.Post, len(latest))
	copy(latestCopy, latest)

	return Snapshot{
		Timer:             timerState,
		FormattedTimer:    timer.FormatElapsed(timerState.Count),
		Fetch:             fetchState,
		PostsCount:        len(fetchState.Items),
		LatestPosts:       latestCopy,
		Worker:            s.worker.State(),
		Notifications:     notifications,
		NotificationCount: len(notifications),
		CurrentPage:       s.CurrentPage(),
	}
}
