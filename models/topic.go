package models

// TrendingTopic is a hot post from the topic feed reduced to a short search phrase.
type TrendingTopic struct {
	Title          string `json:"title"`
	ExtractedTopic string `json:"extractedTopic"`
	Score          int    `json:"score"`
	URL            string `json:"url"`
	NumComments    int    `json:"numComments"`
}

type TrendingTopicsResponse struct {
	Success bool            `json:"success"`
	Topics  []TrendingTopic `json:"topics"`
	Cached  bool            `json:"cached"`
}
