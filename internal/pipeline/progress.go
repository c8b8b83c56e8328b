package pipeline

// Phase identifies which pass a progress update belongs to
type Phase int

const (
	// PhaseFetch covers collecting episodes and their subtitle sections
	PhaseFetch Phase = iota
	// PhaseDownload covers downloading the selected subtitle for every episode
	PhaseDownload
)

// Progress is one step of a pass. Rendering it into text is left to the caller.
type Progress struct {
	Phase   Phase
	Current int    // Fetch: index of the episode about to start. Download: completed downloads
	Total   int    // Number of steps in the pass
	Percent int    // floor(Current / Total * 100)
	Episode string // Title of the episode about to be fetched, empty for downloads
}

// ProgressFunc receives progress updates. It may be nil.
type ProgressFunc func(Progress)

// Percent returns floor(current / total * 100), or 0 when total is not positive
func Percent(current, total int) int {
	if total <= 0 {
		return 0
	}
	return current * 100 / total
}

func (f ProgressFunc) report(p Progress) {
	if f != nil {
		f(p)
	}
}
