package topics

import "narrative-assembly/models"

// FallbackTopics are served whenever the feed cannot be read.
var FallbackTopics = []models.TrendingTopic{
	{Title: "Immigration policy debate intensifies", ExtractedTopic: "immigration"},
	{Title: "NHS waiting lists reach new record", ExtractedTopic: "NHS waiting lists"},
	{Title: "Cost of living crisis continues", ExtractedTopic: "cost of living"},
	{Title: "Starmer faces pressure over Mandelson", ExtractedTopic: "Starmer Mandelson"},
	{Title: "Climate change targets under review", ExtractedTopic: "climate change"},
	{Title: "Reform UK rises in polls", ExtractedTopic: "Reform UK"},
	{Title: "Russia-Ukraine war latest", ExtractedTopic: "Russia Ukraine"},
	{Title: "Housing crisis worsens across UK", ExtractedTopic: "housing crisis"},
}

func fallback() []models.TrendingTopic {
	return append([]models.TrendingTopic(nil), FallbackTopics...)
}
