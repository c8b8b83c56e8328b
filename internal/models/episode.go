package models

// EpisodeLink represents one entry of an episode listing page
type EpisodeLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
