package domain

import (
	"fmt"
	"net/url"
)

// SearchCategory groups follow-up web searches for a destination.
type SearchCategory struct {
	Label   string
	Emoji   string
	Queries []string
}

func SearchCategories(city string) []SearchCategory {
	return []SearchCategory{
		{Label: "맛집", Emoji: "🍴", Queries: []string{city + " 맛집", city + " 맛집 추천", city + " 로컬 맛집"}},
		{Label: "카페", Emoji: "☕", Queries: []string{city + " 카페", city + " 예쁜 카페", city + " 분위기 좋은 카페"}},
		{Label: "관광지", Emoji: "🏛️", Queries: []string{city + " 관광지", city + " 가볼만한 곳", city + " 여행 코스"}},
		{Label: "쇼핑", Emoji: "🛍️", Queries: []string{city + " 쇼핑", city + " 쇼핑 명소", city + " 기념품"}},
		{Label: "숙소", Emoji: "🏨", Queries: []string{city + " 호텔 추천", city + " 숙소", city + " 가성비 숙소"}},
	}
}

func BlogSearchURL(query string) string {
	return fmt.Sprintf("https://search.naver.com/search.naver?where=blog&query=%s", url.QueryEscape(query))
}

func PlaceSearchURL(query string) string {
	return "https://map.naver.com/v5/search/" + url.PathEscape(query)
}
