package services

import (
	"strings"

	"github.com/yungbote/dayplanner-backend/internal/types"
)

// CampusMatcher decides whether an event requires physical presence at a
// location served by the bus timetable. Kept behind an interface because the
// keyword lists need tuning as real calendars show up.
type CampusMatcher interface {
	IsCampusEvent(e types.CalendarEvent) bool
}

type keywordCampusMatcher struct {
	campusKeywords     []string
	remoteIndicators   []string
	remoteTitleKeyword []string
}

func NewKeywordCampusMatcher() CampusMatcher {
	return &keywordCampusMatcher{
		campusKeywords:     []string{"udc", "campus", "student hold", "university", "building", "room"},
		remoteIndicators:   []string{"zoom.us", "http://", "https://", "meet.google", "teams.microsoft", "online", "virtual", "remote"},
		remoteTitleKeyword: []string{"online", "virtual", "zoom", "remote"},
	}
}

// IsCampusEvent vetoes anything that looks remote, then admits events with a
// campus keyword in the location, any non-empty physical location, or a campus
// keyword in the title.
func (m *keywordCampusMatcher) IsCampusEvent(e types.CalendarEvent) bool {
	title := strings.ToLower(e.Title)
	location := strings.ToLower(e.Location)

	if containsAny(title, m.remoteTitleKeyword) {
		return false
	}
	if location != "" && containsAny(location, m.remoteIndicators) {
		return false
	}

	hasCampusLocation := location != "" && containsAny(location, m.campusKeywords)
	hasPhysicalLocation := strings.TrimSpace(e.Location) != ""
	titleMentionsCampus := containsAny(title, m.campusKeywords)

	return hasCampusLocation || hasPhysicalLocation || titleMentionsCampus
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func filterCampusEvents(matcher CampusMatcher, events []types.CalendarEvent) []types.CalendarEvent {
	campus := make([]types.CalendarEvent, 0, len(events))
	for _, e := range events {
		if matcher.IsCampusEvent(e) {
			campus = append(campus, e)
		}
	}
	return campus
}
