package availability

import (
	"fmt"
	"time"
)

// Locale carries the display wording for one language. Message composition is
// kept apart from the decision logic so the resolver core stays testable
// without string assertions and new languages need no algorithm changes.
type Locale struct {
	Name     string
	DayNames [7]string
	Today    string
	Tomorrow string

	msgTemporarilyClosed string
	msgClosed            string
	msgOpenUntil         string
	msgClosingSoon       string
	msgOpensLaterToday   string
	msgOpensTomorrow     string
	msgOpensOnDay        string
	msgCannotOrder       string
}

// DayName returns the localized name for the weekday (0 = Sunday).
func (l *Locale) DayName(day time.Weekday) string {
	return l.DayNames[int(day)]
}

func (l *Locale) temporarilyClosed(reason string) string {
	if reason != "" {
		return reason
	}
	return l.msgTemporarilyClosed
}

func (l *Locale) closed() string {
	return l.msgClosed
}

func (l *Locale) openUntil(closeTime string) string {
	return fmt.Sprintf(l.msgOpenUntil, closeTime)
}

func (l *Locale) closingSoon(closeTime string) string {
	return fmt.Sprintf(l.msgClosingSoon, closeTime)
}

func (l *Locale) opensLaterToday(openTime string) string {
	return fmt.Sprintf(l.msgOpensLaterToday, openTime)
}

func (l *Locale) opensTomorrow(openTime string) string {
	return fmt.Sprintf(l.msgOpensTomorrow, openTime)
}

func (l *Locale) opensOnDay(day time.Weekday, openTime string) string {
	return fmt.Sprintf(l.msgOpensOnDay, l.DayName(day), openTime)
}

func (l *Locale) cannotOrder(statusMessage string) string {
	return fmt.Sprintf(l.msgCannotOrder, statusMessage)
}

// Arabic is the default customer-facing locale.
func Arabic() *Locale {
	return &Locale{
		Name:     "ar",
		DayNames: [7]string{"الأحد", "الإثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
		Today:    "اليوم",
		Tomorrow: "غداً",

		msgTemporarilyClosed: "المطعم مغلق مؤقتاً",
		msgClosed:            "المطعم مغلق حالياً",
		msgOpenUntil:         "مفتوح حتى %s",
		msgClosingSoon:       "يغلق قريباً، الساعة %s",
		msgOpensLaterToday:   "مغلق الآن، يفتح اليوم الساعة %s",
		msgOpensTomorrow:     "مغلق الآن، يفتح غداً الساعة %s",
		msgOpensOnDay:        "مغلق اليوم، يفتح يوم %s الساعة %s",
		msgCannotOrder:       "عذراً، لا يمكنك الطلب الآن. %s",
	}
}

// English is used by back-office surfaces.
func English() *Locale {
	return &Locale{
		Name:     "en",
		DayNames: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		Today:    "today",
		Tomorrow: "tomorrow",

		msgTemporarilyClosed: "The restaurant is temporarily closed",
		msgClosed:            "The restaurant is currently closed",
		msgOpenUntil:         "Open until %s",
		msgClosingSoon:       "Closing soon, at %s",
		msgOpensLaterToday:   "Closed now, opens today at %s",
		msgOpensTomorrow:     "Closed now, opens tomorrow at %s",
		msgOpensOnDay:        "Closed today, opens %s at %s",
		msgCannotOrder:       "Sorry, you cannot order right now. %s",
	}
}

// LocaleByName resolves a locale identifier, falling back to Arabic.
func LocaleByName(name string) *Locale {
	switch name {
	case "en":
		return English()
	default:
		return Arabic()
	}
}
