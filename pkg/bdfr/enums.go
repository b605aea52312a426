package bdfr

import "github.com/goliatone/go-bdfrgen/pkg/schema"

// SortType orders subreddit and user listings. Values are wire values.
type SortType string

const (
	SortControversial SortType = "controversial"
	SortHot           SortType = "hot"
	SortNew           SortType = "new"
	SortRelevance     SortType = "relevance"
	SortRising        SortType = "rising"
	SortTop           SortType = "top"
)

func (SortType) EnumMembers() []schema.Member {
	return []schema.Member{
		{Name: "CONTROVERSIAL", Value: string(SortControversial)},
		{Name: "HOT", Value: string(SortHot)},
		{Name: "NEW", Value: string(SortNew)},
		{Name: "RELEVANCE", Value: string(SortRelevance)},
		{Name: "RISING", Value: string(SortRising)},
		{Name: "TOP", Value: string(SortTop)},
	}
}

// TimeFilter limits top and controversial listings to a window.
type TimeFilter string

const (
	TimeAll   TimeFilter = "all"
	TimeHour  TimeFilter = "hour"
	TimeDay   TimeFilter = "day"
	TimeWeek  TimeFilter = "week"
	TimeMonth TimeFilter = "month"
	TimeYear  TimeFilter = "year"
)

func (TimeFilter) EnumMembers() []schema.Member {
	return []schema.Member{
		{Name: "ALL", Value: string(TimeAll)},
		{Name: "HOUR", Value: string(TimeHour)},
		{Name: "DAY", Value: string(TimeDay)},
		{Name: "WEEK", Value: string(TimeWeek)},
		{Name: "MONTH", Value: string(TimeMonth)},
		{Name: "YEAR", Value: string(TimeYear)},
	}
}

// Format is the archive output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

func (Format) EnumMembers() []schema.Member {
	return []schema.Member{
		{Name: "JSON", Value: string(FormatJSON)},
		{Name: "XML", Value: string(FormatXML)},
		{Name: "YAML", Value: string(FormatYAML)},
	}
}
